package entity

// User roles
const (
	RolePlanner          = "planner"
	RoleShopForeman      = "shop_foreman"
	RoleQualityInspector = "quality_inspector"
	RoleAdmin            = "admin"
)

// User a dashboard user. Password holds the bcrypt hash and never leaves the service.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Plant    string `json:"plant"`
	Avatar   string `json:"avatar,omitempty"`
	Password string `json:"-"`
}

// Plant a manufacturing site
type Plant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
	Timezone string `json:"timezone"`
}
