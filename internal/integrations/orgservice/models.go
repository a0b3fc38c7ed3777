package orgservice

// Organization модель организации из OrgService
type Organization struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	ManagerIDs []int64 `json:"manager_ids"` // Пользователи с правами управления организацией
}

// IsManager проверяет, что пользователь входит в список менеджеров организации
func (o *Organization) IsManager(userID int64) bool {
	for _, managerID := range o.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от OrgService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
