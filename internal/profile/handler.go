package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// credentialsRequest 是注册和登录共用的请求体
type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse 是注册和登录成功后的响应
type authResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

// RegisterHandler 处理用户注册
func RegisterHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	p, err := Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	token, err := GenerateToken(p.UUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法签发令牌"})
		return
	}
	c.JSON(http.StatusCreated, authResponse{Token: token, Profile: p})
}

// LoginHandler 处理用户登录
func LoginHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	p, err := Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	token, err := GenerateToken(p.UUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法签发令牌"})
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: token, Profile: p})
}

// MeHandler 返回当前访问者的资料
func MeHandler(c *gin.Context) {
	user := CurrentIdentity(c)
	p, err := GetProfile(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到用户资料"})
		return
	}
	c.JSON(http.StatusOK, p)
}
