package sa

import "fmt"

// Представление решения
type Representation string

const (
	// Порядок задач на каждом ресурсе; пакеты строятся конструктором заново.
	RepresentationOrdering Representation = "ordering"
	// Список пакетов напрямую; окрестность merge/split/shift.
	RepresentationBatch Representation = "batch"
)

type Config struct {
	IterationsPerTemp int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	// Максимальный сдвиг пакета во времени (для представления batch).
	MaxIdleShift int

	Representation Representation
}

func DefaultConfig() Config {
	return Config{
		IterationsPerTemp: 100,

		InitialTemp: 10000.0,
		FinalTemp:   1.0,
		Alpha:       0.95,

		MaxIdleShift: 10,

		Representation: RepresentationOrdering,
	}
}

func (c Config) Validate() error {
	if c.IterationsPerTemp <= 0 {
		return fmt.Errorf(
			"IterationsPerTemp должно быть > 0 (получено %d)",
			c.IterationsPerTemp,
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	if c.MaxIdleShift < 0 {
		return fmt.Errorf(
			"MaxIdleShift должно быть >= 0 (получено %d)",
			c.MaxIdleShift,
		)
	}
	switch c.Representation {
	case RepresentationOrdering, RepresentationBatch:
		// ok
	default:
		return fmt.Errorf(
			"неизвестное представление решения %q",
			c.Representation,
		)
	}
	return nil
}
