// Package preflight provides readiness checks for the DOMS webservice and the
// local paths reklamefix depends on.
//
// The CLI "reklamefix check" command runs RunAll and renders each result, so
// an operator can confirm credentials and connectivity before starting a
// batch that touches thousands of objects.
package preflight
