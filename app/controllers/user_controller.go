package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/bind"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type UserController struct {
	users    *services.UserService
	pageSize int
}

func NewUserController(users *services.UserService, pageSize int) *UserController {
	return &UserController{users: users, pageSize: pageSize}
}

// Index lists users. Admin route.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, p, err := c.users.List(r.Context(), queryInt(r, "page", 1), c.pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Paginated(w, users, p)
}

type setRoleInput struct {
	Role string `json:"role" validate:"required,in=USER,ADMIN"`
}

// SetRole assigns a role to a user. Super-admin route.
func (c *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in setRoleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.SetRole(r.Context(), targetID, in.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, user)
}
