package data

import (
	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

var initialUsers = []model.User{
	{
		Name:             "Admin User",
		Email:            "admin@example.com",
		Role:             "admin",
		Skills:           []string{"JavaScript", "React", "Node.js"},
		WorkloadCapacity: 40,
	},
	{
		Name:             "Dana Fields",
		Email:            "dana@example.com",
		Role:             "developer",
		Skills:           []string{"Go", "PostgreSQL"},
		WorkloadCapacity: 40,
	},
	{
		Name:             "Riley Chen",
		Email:            "riley@example.com",
		Role:             "designer",
		Skills:           []string{"Figma", "UX research"},
		WorkloadCapacity: 40,
	},
	{
		Name:             "Sam Okafor",
		Email:            "sam@example.com",
		Role:             "qa engineer",
		Skills:           []string{"Cypress", "test planning"},
		WorkloadCapacity: 40,
	},
}

func initUsers() {
	for i := range initialUsers {
		user := &initialUsers[i]
		existing, err := db.GetUserByEmail(user.Email)
		if err != nil && !errs.IsNotFound(err) {
			utils.Log.Fatalf("[init user] failed to query user %s: %+v", user.Email, err)
		}
		if existing != nil {
			continue
		}
		if err := db.CreateUser(user); err != nil {
			utils.Log.Fatalf("[init user] failed to create user %s: %+v", user.Email, err)
		}
	}
}
