package model

import "time"

type Role string

const (
	RoleDefendant Role = "defendant"
	RolePlaintiff Role = "plaintiff"
	RoleJuror     Role = "juror"
	RoleJudge     Role = "judge"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDefendant, RolePlaintiff, RoleJuror, RoleJudge:
		return true
	}
	return false
}

// CanSubmitCases reports whether the role is a party to a case.
func (r Role) CanSubmitCases() bool {
	return r == RoleDefendant || r == RolePlaintiff
}

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
