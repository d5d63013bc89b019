/*
Package weavetest provides mocks and helpers for testing handlers,
decorators and authenticators without running a full application.
*/
package weavetest
