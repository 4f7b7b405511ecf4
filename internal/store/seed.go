// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-portal-identity/models"

// defaultSeedPassword is the initial password of every seeded account.
const defaultSeedPassword = "123"

// defaultAccounts returns the accounts seeded into an empty registry,
// without passwords.
func defaultAccounts() []models.User {
	return []models.User{
		{
			ID:         "admin",
			Username:   "admin",
			FullName:   "Super Admin",
			Role:       models.RoleAdmin,
			Avatar:     models.AvatarURL("admin"),
			Department: models.DefaultAdminDepartment,
		},
		{
			ID:         "001",
			Username:   "001",
			FullName:   "John Doe",
			Role:       models.RoleStaff,
			Avatar:     models.AvatarURL("staff"),
			Department: "Produce",
		},
	}
}
