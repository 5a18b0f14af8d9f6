package snake

// Snapshot captures the observable game state for tests and logging.
type Snapshot struct {
	Tick     uint64
	State    RunState
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	Won      bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	head := g.snake[0]
	return Snapshot{
		Tick:     g.ticks,
		State:    g.state,
		Score:    g.score,
		SnakeLen: len(g.snake),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.direction,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		Won:      g.won,
	}
}
