package department

type Department struct {
	Name string
}
