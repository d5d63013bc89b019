/*
Package errors implements the error kinds shared by all swap extensions.

Every error returned by a handler should wrap one of the root errors
declared with Register. Root errors carry an ABCI code, so a client can
tell an invalid amount from a missing offer without parsing messages.

Extensions that need their own kinds register them at package init time:

	var ErrEntryMismatch = errors.Register(601, "entry mismatch")

Use Wrap or Wrapf to add context at the point where the error is created.
The first wrap attaches a stack trace, which is printed with %+v.
*/
package errors
