package entities

type ActorType string

const (
	ActorOperator ActorType = "operator"
	ActorDriver   ActorType = "driver"
	ActorSystem   ActorType = "system"
)

func (t ActorType) String() string {
	return string(t)
}

// Actor автор изменения. Приходит от слоя аутентификации, ядро ему доверяет.
type Actor struct {
	Type ActorType
	ID   string
	Name string
}

func (a Actor) IsValid() bool {
	switch a.Type {
	case ActorOperator, ActorDriver:
		return a.ID != ""
	case ActorSystem:
		return true
	default:
		return false
	}
}

func SystemActor() Actor {
	return Actor{
		Type: ActorSystem,
		ID:   "system",
		Name: "system",
	}
}
