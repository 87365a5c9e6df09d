package dto

type AuditLogFilterDTO struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}
