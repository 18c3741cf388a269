// Package doms talks to the DOMS central webservice.
//
// Client speaks SOAP 1.1 over HTTP basic auth and exposes the five calls the
// batch needs: read a datastream, read an object's lifecycle state, mark an
// object in progress, replace a datastream and publish the object again. Every
// failure wraps ErrRemote; SOAP faults additionally unwrap to *Fault so
// callers can inspect the server-side exception name.
package doms
