// Package types defines the budget snapshot entities, the closed
// enumerations they carry, the export table names, and the standard errors
// for ynab-export.
//
// An entity value is read exactly as the budgeting service returned it.
// Nothing in this package filters deleted records or applies export rules;
// that is the job of internal/export.
package types
