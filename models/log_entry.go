// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LogStatus is the outcome recorded in a [LogEntry].
type LogStatus string

const (
	StatusSuccess LogStatus = "SUCCESS"
	StatusFailure LogStatus = "FAILURE"
)

// Audit events recorded by the session manager.
const (
	EventLogin        = "Login"
	EventLogout       = "Logout"
	EventRegistration = "Registration"
)

// AuditLogCapacity is the maximum number of entries retained by the audit
// log. Older entries are dropped, not archived.
const AuditLogCapacity = 100

// LogEntry is one audit event. The audit log keeps entries newest-first.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Event     string    `json:"event"`
	Status    LogStatus `json:"status"`
}
