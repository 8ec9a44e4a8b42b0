package auth

import (
	"fmt"

	"github.com/erazemk/anylist/internal/model"
)

// Operation names an entry point subject to role gating.
type Operation string

// Operations.
const (
	OpRevalidate Operation = "revalidate"
	OpLogout     Operation = "auth.logout"

	OpUsersList   Operation = "users.list"
	OpUsersGet    Operation = "users.get"
	OpUsersItems  Operation = "users.items"
	OpUsersLists  Operation = "users.lists"
	OpUsersUpdate Operation = "users.update"
	OpUsersBlock  Operation = "users.block"

	OpItems     Operation = "items"
	OpLists     Operation = "lists"
	OpListItems Operation = "listItems"
)

// Policies maps each operation to the roles allowed to invoke it. An empty
// entry admits any authenticated user.
var Policies = map[Operation][]model.Role{
	OpRevalidate: {model.RoleAdmin},
	OpLogout:     nil,

	OpUsersList:   {model.RoleAdmin, model.RoleSuperUser},
	OpUsersGet:    {model.RoleAdmin, model.RoleSuperUser},
	OpUsersItems:  {model.RoleAdmin, model.RoleSuperUser},
	OpUsersLists:  {model.RoleAdmin, model.RoleSuperUser},
	OpUsersUpdate: {model.RoleAdmin},
	OpUsersBlock:  {model.RoleAdmin},

	OpItems:     nil,
	OpLists:     nil,
	OpListItems: nil,
}

// Required returns the role set for op. Unknown operations are a
// programming error.
func Required(op Operation) []model.Role {
	roles, ok := Policies[op]
	if !ok {
		panic(fmt.Sprintf("auth: no policy for operation %q", op))
	}
	return roles
}
