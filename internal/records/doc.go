// Package records defines the persisted record types shared by the server
// and the terminal client: tasks and study logs, their enums, and the
// strictly typed create/patch inputs decoded from request bodies.
//
// Inputs use pointer fields so that "absent" and "zero" stay distinguishable;
// a patch only ever touches the fields that are present.
package records
