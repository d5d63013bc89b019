/*
Package x contains the extensions of the swap chain.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the application.

The root package only defines the authentication abstraction shared by
all extensions. Handlers receive an Authenticator in their constructor
so that signature based and derived authorities can be plugged in
without the handler knowing where a condition comes from.

Note that types in exported code will be prefixed by the package, so
follow standard go naming conventions and avoid stutter. Use eg.
`offer.CreateMsg` in place of `offer.CreateOfferMsg`.
*/
package x
