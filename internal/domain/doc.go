// Package domain contains the core business entities, value objects, and
// domain logic of the projection engine: the assumption aggregate consumed
// by a simulation run, the calc run ledger entities it produces, and the
// error taxonomy shared across layers. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
