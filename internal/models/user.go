package models

import (
	"time"
)

const (
	AdminsCollection = "admins"
	UsersCollection  = "users"
)

// AdminRecord is the admins/<uid> document. UID always matches an identity provider account.
type AdminRecord struct {
	UID       string    `json:"uid" firestore:"uid"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedBy string    `json:"createdBy" firestore:"createdBy"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
