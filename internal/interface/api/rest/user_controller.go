package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/internal/application/ports"
	"users-api/internal/interface/api/rest/dto/user"
	"users-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r gin.IRouter,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PUT(RouteUser, uc.UpdateUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindUsers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternalError)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	data := user.ToResponseUsers(users)
	count := len(data)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	// a non-numeric id cannot match any record
	ok, id := validator.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternalError)
		uc.logger.Error("FindUserByID() error", zap.Error(err), zap.Int64("id", int64(id)))
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	success(c, http.StatusOK, "", user.ToResponseUser(*u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if !uc.bindJSON(c, &req) {
		return
	}
	if errs := validator.ValidateUser(req); errs != nil {
		fail(c, http.StatusBadRequest, MsgNameEmailReq)
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), user.ToDomainUser(req))
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternalError)
		uc.logger.Error("CreateUser() error", zap.Error(err))
		return
	}

	success(c, http.StatusCreated, MsgUserCreated, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	ok, id := validator.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	var req user.UpdateRequest
	if !uc.bindJSON(c, &req) {
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), user.UpdateToDomainUser(id, req))
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternalError)
		uc.logger.Error("UpdateUser() error", zap.Error(err), zap.Int64("id", int64(id)))
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	success(c, http.StatusOK, MsgUserUpdated, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, id := validator.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	u, err := uc.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternalError)
		uc.logger.Error("DeleteUser() error", zap.Error(err), zap.Int64("id", int64(id)))
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, MsgUserNotFound)
		return
	}

	success(c, http.StatusOK, MsgUserDeleted, user.ToResponseUser(*u))
}

// bindJSON treats an empty body as an empty object.
func (uc *UserController) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}
