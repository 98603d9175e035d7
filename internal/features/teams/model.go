package teams

type Availability string

const (
	Available Availability = "Available"
	Busy      Availability = "Busy"
	Standby   Availability = "Standby"
)

// Team is a field crew that accepted reports are assigned to
type Team struct {
	Name         string       `json:"name" example:"Road Repair - Unit A"`
	Members      int          `json:"members" example:"4"`
	Location     string       `json:"location" example:"Sector 4"`
	Availability Availability `json:"availability" example:"Available"`
	OpenTasks    int          `json:"openTasks" example:"2"`
	ActiveTasks  int          `json:"activeTasks" example:"1"`
}

// Board is the task board: every team plus the work still waiting for one
type Board struct {
	Teams      []Team `json:"teams"`
	Unassigned int    `json:"unassigned" example:"3"`
}

// Roster is the fixed set of field teams
var Roster = []Team{
	{Name: "Road Repair - Unit A", Members: 4, Location: "Sector 4", Availability: Available},
	{Name: "Clean City - Team 1", Members: 6, Location: "Old City", Availability: Busy},
	{Name: "Electric Works - Zone 4", Members: 2, Location: "Sector 9", Availability: Available},
	{Name: "Rapid Response - Fire", Members: 10, Location: "HQ", Availability: Standby},
}
