package health

// ViewCounter источник количества открытых представлений
type ViewCounter interface {
	Active() int
}
