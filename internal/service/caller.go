package service

import "restoapi/internal/model"

// Caller identifies the authenticated user behind a request. A nil *Caller is anonymous.
type Caller struct {
	UserID string
	Email  string
	Role   model.Role
}

// IDPtr returns the user ID for createdBy/updatedBy columns, nil when anonymous.
func (c *Caller) IDPtr() *string {
	if c == nil || c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}

func (c *Caller) IsStaff() bool {
	return c != nil && c.Role.IsStaff()
}

func (c *Caller) owns(createdBy *string) bool {
	return c != nil && createdBy != nil && *createdBy == c.UserID
}

// pageQuery normalises page/limit query values into a repository page.
func pageQuery(page, limit, defLimit int) (p, l, offset int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// Pagination is echoed back on paginated listings.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
