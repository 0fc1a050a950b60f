package menu

type State int

const (
	Idle State = iota
	AwaitingChoice
	CollectingFields
	Exiting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingChoice:
		return "awaiting-choice"
	case CollectingFields:
		return "collecting-fields"
	case Exiting:
		return "exiting"
	}
	return "unknown"
}

type Command int

const (
	CmdAdd Command = iota + 1
	CmdList
	CmdUpdate
	CmdDelete
	CmdExit
)

var menuItems = []struct {
	cmd   Command
	label string
}{
	{CmdAdd, "Add Employee"},
	{CmdList, "View All Employees"},
	{CmdUpdate, "Update Employee"},
	{CmdDelete, "Delete Employee"},
	{CmdExit, "Exit"},
}
