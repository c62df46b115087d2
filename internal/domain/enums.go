package domain

// Role 被观察对象的角色（固定枚举）
type Role string

const (
	RoleCommander      Role = "commander"
	RolePilot          Role = "pilot"
	RoleEngineer       Role = "engineer"
	RoleScientist      Role = "scientist"
	RoleMedic          Role = "medic"
	RoleMissionControl Role = "mission_control"
	RoleVisitorOther   Role = "visitor_other"
)

// RoleInfo carries the display label shown in option lists and exports.
type RoleInfo struct {
	Key   Role   `json:"key"`
	Label string `json:"label"`
}

// Roles is the fixed option list, in display order.
var Roles = []RoleInfo{
	{Key: RoleCommander, Label: "Commander"},
	{Key: RolePilot, Label: "Pilot"},
	{Key: RoleEngineer, Label: "Engineer"},
	{Key: RoleScientist, Label: "Scientist"},
	{Key: RoleMedic, Label: "Medic"},
	{Key: RoleMissionControl, Label: "Mission control"},
	{Key: RoleVisitorOther, Label: "Visitor / other"},
}

var roleSet = func() map[Role]bool {
	m := make(map[Role]bool, len(Roles))
	for _, r := range Roles {
		m[r.Key] = true
	}
	return m
}()

// ValidRole reports whether s is a recognized role key.
func ValidRole(s string) bool { return roleSet[Role(s)] }

// ParseRoleOrDefault is a total parse: unknown keys map to visitor_other,
// never an error. Untrusted import rows rely on this.
func ParseRoleOrDefault(s string) Role {
	if roleSet[Role(s)] {
		return Role(s)
	}
	return RoleVisitorOther
}

// Activity 活动类型（固定枚举）
type Activity string

const (
	ActivityWalking       Activity = "walking"
	ActivitySitting       Activity = "sitting"
	ActivityStanding      Activity = "standing"
	ActivitySocializing   Activity = "socializing"
	ActivityReading       Activity = "reading"
	ActivityComputerWork  Activity = "computer_work"
	ActivityEquipmentTask Activity = "equipment_task"
	ActivityMeal          Activity = "meal"
	ActivitySleepRest     Activity = "sleep_rest"
)

// ActivityInfo carries the display label and marker color for one activity.
// Color is a presentation concern but lives in the enumeration so exports
// and frontends agree on it.
type ActivityInfo struct {
	Key   Activity `json:"key"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

// Activities is the fixed option list, in display order.
var Activities = []ActivityInfo{
	{Key: ActivityWalking, Label: "Walking", Color: "#1f77b4"},
	{Key: ActivitySitting, Label: "Sitting", Color: "#9467bd"},
	{Key: ActivityStanding, Label: "Standing", Color: "#ff7f0e"},
	{Key: ActivitySocializing, Label: "Socializing", Color: "#e377c2"},
	{Key: ActivityReading, Label: "Reading", Color: "#2ca02c"},
	{Key: ActivityComputerWork, Label: "Computer work", Color: "#17becf"},
	{Key: ActivityEquipmentTask, Label: "Equipment / procedure", Color: "#8c564b"},
	{Key: ActivityMeal, Label: "Meal / hydration", Color: "#bcbd22"},
	{Key: ActivitySleepRest, Label: "Rest / sleep", Color: "#7f7f7f"},
}

var activitySet = func() map[Activity]bool {
	m := make(map[Activity]bool, len(Activities))
	for _, a := range Activities {
		m[a.Key] = true
	}
	return m
}()

// ValidActivity reports whether s is a recognized activity key.
func ValidActivity(s string) bool { return activitySet[Activity(s)] }

// ParseActivityOrDefault is a total parse: unknown keys map to walking.
func ParseActivityOrDefault(s string) Activity {
	if activitySet[Activity(s)] {
		return Activity(s)
	}
	return ActivityWalking
}
