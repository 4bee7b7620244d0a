// Package domain defines the core business entities of the court case
// management system: users, cases, case documents, and the hearing
// history that the scheduling engine maintains.
package domain
