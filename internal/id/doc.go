// Package id generates the identifiers attached to outgoing calls.
//
// Request ids are UUID v7 so that ids from one process sort by creation
// time in server logs.
package id
