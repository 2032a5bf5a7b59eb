package main

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"lh01/pkg/vision"
	"lh01/store"
)

func setupRoutes(r *gin.Engine) {
	r.GET("/", homeHandler)
	r.GET("/api/health", healthHandler)
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.GET("/api/getPlayerRecord", getPlayerRecordHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.POST("/api/uploadRecordPic", uploadRecordPicHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("username", username)
		c.Next()
	}
}

func homeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "poker session ledger service",
		"status":  "success",
		"version": "1.0.0",
	})
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "lh01-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Register(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString})
}

// uploadRecordPicHandler accepts a summary-screen screenshot, runs the
// extraction pipeline and persists the parsed session.
func uploadRecordPicHandler(c *gin.Context) {
	if parser == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "anchor pattern not loaded"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no selected file"})
		return
	}
	if file.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 10MB)"})
		return
	}
	switch filepath.Ext(file.Filename) {
	case ".jpg", ".jpeg", ".png":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}
	fullPath := filepath.Join(uploadBaseDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	shot, err := parser.ParseFile(fullPath)
	if err != nil {
		if errors.Is(err, vision.ErrAnchorNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "anchor not found in screenshot", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed", "detail": err.Error()})
		return
	}
	game, err := store.SaveScreenshot(db, shot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "screenshot processed",
		"filename": file.Filename,
		"game_id":  game.ID,
		"players":  len(shot.RecordList),
	})
}

// getPlayerRecordHandler returns the dense cumulative ledger. Optional
// ?days=N restricts the window to recent sessions.
func getPlayerRecordHandler(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
		days = parsed
	}
	rows, err := store.PlayerRecords(db, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger build failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    rows,
		"status":  "success",
		"message": "player records fetched",
	})
}
