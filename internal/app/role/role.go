package role

// Role - роль пользователя в системе
type Role int

const (
	Buyer   Role = iota // обычный пользователь, работает со своими заявками
	Manager             // менеджер
	Admin               // модератор: управление каталогом и статусами заявок
)

func (r Role) String() string {
	switch r {
	case Buyer:
		return "buyer"
	case Manager:
		return "manager"
	case Admin:
		return "admin"
	}
	return "unknown"
}
