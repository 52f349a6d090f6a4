package httptransport

import (
	"log/slog"

	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/LeonardoCto/myeconomyback/internal/token"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/handler"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterDeps struct {
	Logger          *slog.Logger
	Tokens          *token.Manager
	Users           repository.UserRepository
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ExpenseHandler  *handler.ExpenseHandler
	LimitHandler    *handler.LimitHandler
	CategoryHandler *handler.CategoryHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(deps.Logger))
	r.Use(middleware.Metrics())

	// Public routes
	r.POST("/signup", deps.AuthHandler.SignUp)
	r.POST("/signin", deps.AuthHandler.SignIn)
	r.GET("/categories", deps.CategoryHandler.List)

	// Everything below requires a resolved principal.
	authMW := middleware.Auth(deps.Tokens, deps.Users)

	r.GET("/user", authMW, deps.UserHandler.Get)

	expense := r.Group("/expense", authMW)
	expense.POST("/create", deps.ExpenseHandler.Create)
	expense.DELETE("/delete/:id", deps.ExpenseHandler.Delete)
	expense.GET("/month/:month", deps.ExpenseHandler.ListByMonth)

	r.GET("/limits", authMW, deps.LimitHandler.List)

	limit := r.Group("/limit", authMW)
	limit.POST("/create", deps.LimitHandler.Create)
	limit.DELETE("/delete/:id", deps.LimitHandler.Delete)

	return r
}
