package config

// Model is the unified, format-agnostic representation of a network build.
type Model struct {
	Catalog     *Catalog
	Components  map[string]*Component
	Tasks       []*Task
	Connections []*Connection
}

// NewModel returns an empty model with all collections initialized.
func NewModel() *Model {
	return &Model{
		Catalog:    &Catalog{},
		Components: make(map[string]*Component),
	}
}

// --- Catalog records ---

// Catalog holds the persisted transform records.
type Catalog struct {
	Frames  []string
	Static  []*StaticTransform
	Dynamic []*DynamicTransform
}

// StaticTransform is a constant transform between two frames.
type StaticTransform struct {
	From        string
	To          string
	Translation [3]float64
	// Rotation is a quaternion stored as x, y, z, w.
	Rotation [4]float64
}

// DynamicTransform binds a producer component to the transform it emits.
type DynamicTransform struct {
	From     string
	To       string
	Producer string
}

// --- Component models ---

// PortDirection tells inputs from outputs.
type PortDirection int

const (
	Input PortDirection = iota
	Output
)

func (d PortDirection) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Port declares a component port and its optional transformer annotation:
// either a single frame alias, or a from/to pair for transform ports.
type Port struct {
	Name      string
	Direction PortDirection
	Frame     string
	From      string
	To        string
}

// IsTransform reports whether the port carries a transform annotation.
func (p *Port) IsTransform() bool {
	return p.From != "" || p.To != ""
}

// Need is a transformation, in local aliases, a component requires.
type Need struct {
	From string
	To   string
}

// Component is the model a task is instantiated from.
type Component struct {
	Name  string
	Ports []*Port
	Needs []*Need
}

// --- Network ---

// Device is hardware attached to a driver task. It binds the driver port
// through which its data flows to global frames.
type Device struct {
	Name  string
	Port  string
	Frame string
	From  string
	To    string
}

// ProducerChoice names the producer a task wants for a transform.
type ProducerChoice struct {
	From     string
	To       string
	Producer string
}

// Task is an instance of a component in the network.
type Task struct {
	Name      string
	Component string
	Frames    map[string]string
	Producers []*ProducerChoice
	Device    *Device
	// Children lists the tasks this task depends on in the hierarchy.
	Children []string
}

// Connection is a data connection between two task ports, written as
// "task.port".
type Connection struct {
	From string
	To   string
}

// Merge folds other into m. Later components with the same name replace
// earlier ones; every list is appended.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Catalog != nil {
		if m.Catalog == nil {
			m.Catalog = &Catalog{}
		}
		m.Catalog.Frames = append(m.Catalog.Frames, other.Catalog.Frames...)
		m.Catalog.Static = append(m.Catalog.Static, other.Catalog.Static...)
		m.Catalog.Dynamic = append(m.Catalog.Dynamic, other.Catalog.Dynamic...)
	}
	if m.Components == nil {
		m.Components = make(map[string]*Component)
	}
	for name, c := range other.Components {
		m.Components[name] = c
	}
	m.Tasks = append(m.Tasks, other.Tasks...)
	m.Connections = append(m.Connections, other.Connections...)
}
