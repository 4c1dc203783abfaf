package handler

import (
	"errors"

	"derm-go/internal/dto"
	"derm-go/internal/middleware"
	"derm-go/internal/service"
	"derm-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterForm 注册表单结构(GET /register)
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"fields": []string{"username", "email", "password", "confirm_password"},
	})
}

// Register 用户注册(POST /register)
// 表单错误按字段收集后一次性返回，成功后客户端跳转登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求格式错误: "+err.Error())
		return
	}

	if fieldErrors := utils.ValidateStruct(&req); fieldErrors != nil {
		utils.FieldErrors(c, fieldErrors)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			utils.FieldErrors(c, map[string]string{"username": err.Error()})
		case errors.Is(err, service.ErrDuplicateEmail):
			utils.FieldErrors(c, map[string]string{"email": err.Error()})
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "注册成功，请登录", gin.H{
		"redirect": "/login",
		"user": dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// LoginForm 登录表单结构(GET /login)
func (h *AuthHandler) LoginForm(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"fields": []string{"username", "password"},
	})
}

// Login 用户登录(POST /login)
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		// 统一错误消息，不区分用户不存在和密码错误
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 用户登出(GET /logout)
// JWT是无状态的，登出只需客户端删除Token
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessWithMessage(c, "已登出", gin.H{
		"redirect": "/login",
	})
}

// Index 首页(GET /index, 需登录)
func (h *AuthHandler) Index(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	userInfo, err := h.authService.GetMe(userID)
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.SuccessResponse(c, userInfo)
}
