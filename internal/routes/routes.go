package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/AntonZhikin/OfficeDepartment/internal/controllers"
	"github.com/AntonZhikin/OfficeDepartment/pkg/middleware"
)

type Controllers struct {
	Auth         *controllers.AuthController
	HeadOffice   *controllers.HeadOfficeController
	BranchOffice *controllers.BranchOfficeController
	Department   *controllers.DepartmentController
	Employee     *controllers.EmployeeController
	OfficeTask   *controllers.OfficeTaskController
	AuditLog     *controllers.AuditLogController
}

// Register вешает все маршруты API. Чтение открыто любому
// аутентифицированному пользователю, мутации — только администратору.
// Исключение — обновление задач: его делает любой вошедший.
func Register(e *echo.Echo, ctrls Controllers, auth *middleware.AuthMiddleware) {
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", ctrls.Auth.Register)
	authGroup.POST("/login", ctrls.Auth.Login)

	headOffices := api.Group("/head-offices", auth.Auth)
	headOffices.GET("", ctrls.HeadOffice.List)
	headOffices.GET("/:id", ctrls.HeadOffice.GetByID)
	headOffices.POST("", ctrls.HeadOffice.Create, auth.RequireAdmin)
	headOffices.PUT("/:id", ctrls.HeadOffice.Update, auth.RequireAdmin)
	headOffices.DELETE("/:id", ctrls.HeadOffice.Delete, auth.RequireAdmin)

	branchOffices := api.Group("/branch-offices", auth.Auth)
	branchOffices.GET("", ctrls.BranchOffice.List)
	branchOffices.GET("/:id", ctrls.BranchOffice.GetByID)
	branchOffices.POST("", ctrls.BranchOffice.Create, auth.RequireAdmin)
	branchOffices.PUT("/:id", ctrls.BranchOffice.Update, auth.RequireAdmin)
	branchOffices.DELETE("/:id", ctrls.BranchOffice.Delete, auth.RequireAdmin)

	departments := api.Group("/departments", auth.Auth)
	departments.GET("", ctrls.Department.List)
	departments.GET("/:id", ctrls.Department.GetByID)
	departments.POST("", ctrls.Department.Create, auth.RequireAdmin)
	departments.PUT("/:id", ctrls.Department.Update, auth.RequireAdmin)
	departments.DELETE("/:id", ctrls.Department.Delete, auth.RequireAdmin)

	employees := api.Group("/employees", auth.Auth)
	employees.GET("", ctrls.Employee.List)
	employees.GET("/:id", ctrls.Employee.GetByID)
	employees.POST("", ctrls.Employee.Create, auth.RequireAdmin)
	employees.PUT("/:id", ctrls.Employee.Update, auth.RequireAdmin)
	employees.DELETE("/:id", ctrls.Employee.Delete, auth.RequireAdmin)

	tasks := api.Group("/office-tasks", auth.Auth)
	tasks.GET("", ctrls.OfficeTask.List)
	tasks.GET("/:id", ctrls.OfficeTask.GetByID)
	tasks.POST("", ctrls.OfficeTask.Create, auth.RequireAdmin)
	// Статус задачи двигают сами исполнители, поэтому без RequireAdmin.
	tasks.PUT("/:id", ctrls.OfficeTask.Update)
	tasks.DELETE("/:id", ctrls.OfficeTask.Delete, auth.RequireAdmin)

	auditLogs := api.Group("/audit-logs", auth.Auth, auth.RequireAdmin)
	auditLogs.GET("", ctrls.AuditLog.List)
	auditLogs.GET("/export", ctrls.AuditLog.Export)
	auditLogs.GET("/:id", ctrls.AuditLog.GetByID)
}
