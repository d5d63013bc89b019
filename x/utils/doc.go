/*
Package utils provides the decorators every swap application stacks in
front of its router: panic recovery, structured logging, prometheus
metrics, action tagging and savepoints.
*/
package utils
