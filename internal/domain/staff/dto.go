package staff

// MemberRequest represents a staff member create/update submission
type MemberRequest struct {
	Name           string         `json:"name" validate:"required,min=2,max=200"`
	Role           string         `json:"role" validate:"omitempty,staffrole"`
	Email          string         `json:"email" validate:"omitempty,email"`
	Phone          string         `json:"phone" validate:"omitempty,max=30"`
	Active         *bool          `json:"active"`
	WeeklySchedule WeeklySchedule `json:"weekly_schedule"`
}

func (req *MemberRequest) toEntity(id int64) *Member {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	schedule := req.WeeklySchedule
	if schedule == nil {
		schedule = WeeklySchedule{}
	}
	return &Member{
		ID:             id,
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		Phone:          req.Phone,
		Active:         active,
		WeeklySchedule: schedule,
	}
}
