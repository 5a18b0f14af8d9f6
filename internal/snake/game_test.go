package snake

import (
	"slices"
	"testing"
)

// recorder captures listener signals.
type recorder struct {
	renders   int
	lastSnake []Cell
	lastFood  Cell
	overs     int
	lastScore int
	lastWon   bool
}

func (r *recorder) Render(snake []Cell, food Cell) {
	r.renders++
	r.lastSnake = snake
	r.lastFood = food
}

func (r *recorder) GameOver(score int, won bool) {
	r.overs++
	r.lastScore = score
	r.lastWon = won
}

// place overwrites the snake body for scenario tests.
func place(g *Game, body ...Cell) {
	g.snake = slices.Clone(body)
	g.occupied = make(map[Cell]bool, len(body))
	for _, c := range body {
		g.occupied[c] = true
	}
}

func running(t *testing.T, opts ...Option) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := New(append([]Option{WithSeed(42), WithListener(rec)}, opts...)...)
	if !g.Start() {
		t.Fatal("Start() on a paused game should request the first tick")
	}
	return g, rec
}

func TestInitialize(t *testing.T) {
	rec := &recorder{}
	g := New(WithSeed(1), WithListener(rec))

	if g.State() != StatePaused {
		t.Errorf("State() = %v, expected paused", g.State())
	}
	if g.Direction() != DirUp {
		t.Errorf("Direction() = %v, expected Up", g.Direction())
	}
	if !slices.Equal(g.Snake(), DefaultStartBody()) {
		t.Errorf("Snake() = %v, expected %v", g.Snake(), DefaultStartBody())
	}
	if slices.Contains(g.Snake(), g.Food()) {
		t.Errorf("Food %v spawned on snake", g.Food())
	}
	if rec.renders != 1 {
		t.Errorf("Initialize should render once, got %d", rec.renders)
	}
	if g.Cols() != 20 || g.Rows() != 20 {
		t.Errorf("default grid = %dx%d, expected 20x20", g.Cols(), g.Rows())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	g, _ := running(t)

	if g.Start() {
		t.Error("Start() on a running game should be a no-op")
	}
	if g.State() != StateRunning {
		t.Errorf("State() = %v, expected running", g.State())
	}
}

func TestTickIgnoredUnlessRunning(t *testing.T) {
	rec := &recorder{}
	g := New(WithSeed(3), WithListener(rec))
	before := g.Snapshot()

	if g.Tick() {
		t.Error("Tick() while paused should not request another tick")
	}
	if g.Snapshot() != before {
		t.Error("Tick() while paused should not change state")
	}

	g.Start()
	place(g, Cell{X: 0, Y: 5}, Cell{X: 1, Y: 5}, Cell{X: 2, Y: 5})
	g.direction = DirLeft
	g.Tick()
	over := g.Snapshot()

	if g.Tick() {
		t.Error("Tick() after game over should not request another tick")
	}
	if g.Snapshot() != over {
		t.Error("Tick() after game over should not change state")
	}
	if rec.overs != 1 {
		t.Errorf("GameOver should fire once, got %d", rec.overs)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	tests := []struct {
		current Direction
		reverse Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tc := range tests {
		t.Run(tc.current.String(), func(t *testing.T) {
			g, _ := running(t)
			g.direction = tc.current

			g.SetDirection(tc.reverse)
			if g.Direction() != tc.current {
				t.Errorf("reversal %v -> %v should be rejected", tc.current, tc.reverse)
			}
		})
	}
}

func TestSetDirectionLastValidWins(t *testing.T) {
	g, _ := running(t)

	g.SetDirection(DirLeft)
	g.SetDirection(DirRight) // reversal of Left, rejected
	if g.Direction() != DirLeft {
		t.Errorf("Direction() = %v, expected Left", g.Direction())
	}

	g.SetDirection(DirDown)
	if g.Direction() != DirDown {
		t.Errorf("Direction() = %v, expected Down", g.Direction())
	}
}

func TestSetDirectionIgnoredUnlessRunning(t *testing.T) {
	g := New(WithSeed(5))

	g.SetDirection(DirLeft)
	if g.Direction() != DirUp {
		t.Errorf("input while paused should be ignored, got %v", g.Direction())
	}

	g.Start()
	place(g, Cell{X: 0, Y: 5}, Cell{X: 1, Y: 5})
	g.direction = DirLeft
	g.Tick()

	g.SetDirection(DirUp)
	if g.Direction() != DirLeft {
		t.Errorf("input after game over should be ignored, got %v", g.Direction())
	}
}

func TestMoveWithoutEating(t *testing.T) {
	g, rec := running(t)
	place(g, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 6}, Cell{X: 5, Y: 7})
	g.food = Cell{X: 10, Y: 10}

	if !g.Tick() {
		t.Fatal("Tick() should keep the game running")
	}

	want := []Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}
	if !slices.Equal(g.Snake(), want) {
		t.Errorf("Snake() = %v, expected %v", g.Snake(), want)
	}
	if !slices.Equal(rec.lastSnake, want) {
		t.Errorf("rendered snake = %v, expected %v", rec.lastSnake, want)
	}
	if g.occupied[Cell{X: 5, Y: 7}] {
		t.Error("old tail should be released")
	}
}

func TestSnakeGrowth(t *testing.T) {
	g, rec := running(t)
	place(g, Cell{X: 5, Y: 5}, Cell{X: 5, Y: 6}, Cell{X: 5, Y: 7})
	g.direction = DirUp
	g.food = Cell{X: 5, Y: 4}

	g.Tick()

	want := []Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	if !slices.Equal(g.Snake(), want) {
		t.Errorf("Snake() = %v, expected %v", g.Snake(), want)
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
	if slices.Contains(want, g.Food()) {
		t.Errorf("new food %v spawned on snake", g.Food())
	}
	if rec.lastFood != g.Food() {
		t.Errorf("rendered food = %v, expected %v", rec.lastFood, g.Food())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name string
		body []Cell
		dir  Direction
	}{
		{"left wall", []Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, DirLeft},
		{"right wall", []Cell{{X: 19, Y: 5}, {X: 18, Y: 5}, {X: 17, Y: 5}}, DirRight},
		{"top wall", []Cell{{X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}}, DirUp},
		{"bottom wall", []Cell{{X: 4, Y: 19}, {X: 4, Y: 18}, {X: 4, Y: 17}}, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, rec := running(t)
			place(g, tc.body...)
			g.direction = tc.dir

			if g.Tick() {
				t.Error("Tick() into a wall should stop the tick chain")
			}
			if g.State() != StateOver {
				t.Errorf("State() = %v, expected over", g.State())
			}
			if !slices.Equal(g.Snake(), tc.body) {
				t.Errorf("snake changed on collision: %v", g.Snake())
			}
			if rec.overs != 1 || rec.lastWon {
				t.Errorf("expected one lost GameOver, got %d (won=%v)", rec.overs, rec.lastWon)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	g, rec := running(t)

	// Head turns down into its own body segment at index 3.
	body := []Cell{
		{X: 5, Y: 5}, // Head
		{X: 6, Y: 5},
		{X: 6, Y: 6},
		{X: 5, Y: 6},
		{X: 4, Y: 6},
	}
	place(g, body...)
	g.direction = DirLeft
	g.SetDirection(DirDown)

	if g.Tick() {
		t.Error("self collision should stop the tick chain")
	}
	if g.State() != StateOver {
		t.Errorf("State() = %v, expected over", g.State())
	}
	if !slices.Equal(g.Snake(), body) {
		t.Errorf("snake changed on collision: %v", g.Snake())
	}
	if rec.overs != 1 {
		t.Errorf("GameOver fired %d times, expected 1", rec.overs)
	}
}

func TestTailIsPartOfBody(t *testing.T) {
	g, _ := running(t)

	// A 2x2 loop: the next head is the current tail.
	place(g, Cell{X: 5, Y: 5}, Cell{X: 6, Y: 5}, Cell{X: 6, Y: 6}, Cell{X: 5, Y: 6})
	g.direction = DirDown

	g.Tick()
	if g.State() != StateOver {
		t.Errorf("moving into the tail cell should end the game, state = %v", g.State())
	}
}

func TestSnakeStaysDistinct(t *testing.T) {
	g, _ := running(t, WithSeed(7))
	dirs := []Direction{DirLeft, DirDown, DirRight, DirDown, DirLeft, DirUp}

	for i := 0; i < 500 && g.State() == StateRunning; i++ {
		if i%4 == 0 {
			g.SetDirection(dirs[(i/4)%len(dirs)])
		}
		g.Tick()

		seen := make(map[Cell]bool)
		for _, c := range g.Snake() {
			if seen[c] {
				t.Fatalf("tick %d: duplicate cell %v in %v", i, c, g.Snake())
			}
			seen[c] = true
			if c.X < 0 || c.X >= g.Cols() || c.Y < 0 || c.Y >= g.Rows() {
				t.Fatalf("tick %d: cell %v out of bounds", i, c)
			}
		}
		if len(seen) != len(g.occupied) {
			t.Fatalf("tick %d: occupancy index out of sync", i)
		}
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := New(WithSeed(999))
	body := []Cell{}
	for x := 0; x < 20; x++ {
		body = append(body, Cell{X: x, Y: 3})
	}
	place(g, body...)

	for i := 0; i < 1000; i++ {
		food, ok := g.SpawnFood()
		if !ok {
			t.Fatal("SpawnFood() should find a free cell")
		}
		if g.occupied[food] {
			t.Fatalf("Food spawned on snake at %v", food)
		}
		if food.X < 0 || food.X >= g.Cols() || food.Y < 0 || food.Y >= g.Rows() {
			t.Fatalf("Food spawned out of bounds at %v", food)
		}
	}
}

func TestFoodSpawnLastFreeCell(t *testing.T) {
	g := New(WithSeed(11), WithGrid(3, 3), WithStartBody([]Cell{{X: 0, Y: 0}}))

	var body []Cell
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			body = append(body, Cell{X: x, Y: y})
		}
	}
	place(g, body...)

	for i := 0; i < 20; i++ {
		food, ok := g.SpawnFood()
		if !ok || food != (Cell{X: 2, Y: 2}) {
			t.Fatalf("SpawnFood() = (%v, %v), expected the only free cell", food, ok)
		}
	}

	place(g, append(body, Cell{X: 2, Y: 2})...)
	if _, ok := g.SpawnFood(); ok {
		t.Error("SpawnFood() on a full board should report no cell")
	}
}

func TestFullBoardIsWin(t *testing.T) {
	rec := &recorder{}
	g := New(
		WithSeed(1),
		WithGrid(2, 2),
		WithStartBody([]Cell{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}),
		WithListener(rec),
	)
	if g.Food() != (Cell{X: 1, Y: 1}) {
		t.Fatalf("Food() = %v, expected the only free cell", g.Food())
	}

	g.Start()
	g.SetDirection(DirRight)
	if g.Tick() {
		t.Error("filling the board should stop the tick chain")
	}

	if g.State() != StateOver || !g.Won() {
		t.Errorf("expected won game over, got state=%v won=%v", g.State(), g.Won())
	}
	if g.Len() != 4 || g.Score() != 1 {
		t.Errorf("Len()=%d Score()=%d, expected 4 and 1", g.Len(), g.Score())
	}
	if rec.overs != 1 || !rec.lastWon || rec.lastScore != 1 {
		t.Errorf("GameOver signal = (%d, %v, %d)", rec.overs, rec.lastWon, rec.lastScore)
	}
}

func TestRestart(t *testing.T) {
	g, rec := running(t)
	place(g, Cell{X: 0, Y: 5}, Cell{X: 1, Y: 5}, Cell{X: 2, Y: 5})
	g.direction = DirLeft
	g.score = 4
	g.Tick()
	if g.State() != StateOver {
		t.Fatalf("setup: expected over, got %v", g.State())
	}

	rendersBefore := rec.renders
	if !g.Restart() {
		t.Error("Restart() should request the first tick")
	}

	if !slices.Equal(g.Snake(), DefaultStartBody()) {
		t.Errorf("Snake() = %v, expected initial body", g.Snake())
	}
	if g.Direction() != DirUp {
		t.Errorf("Direction() = %v, expected Up", g.Direction())
	}
	if g.State() != StateRunning {
		t.Errorf("State() = %v, expected running", g.State())
	}
	if g.Score() != 0 || g.Won() {
		t.Errorf("Score()=%d Won()=%v after restart", g.Score(), g.Won())
	}
	if rec.renders <= rendersBefore {
		t.Error("Restart() should render the fresh board")
	}
}

func TestStartAfterOverRestarts(t *testing.T) {
	g, _ := running(t)
	place(g, Cell{X: 0, Y: 5}, Cell{X: 1, Y: 5})
	g.direction = DirLeft
	g.Tick()

	if !g.Start() {
		t.Fatal("Start() after game over should request a tick")
	}
	if !slices.Equal(g.Snake(), DefaultStartBody()) || g.Direction() != DirUp {
		t.Errorf("Start() after game over should reset the board, got %v %v", g.Snake(), g.Direction())
	}
}

func TestDeterminism(t *testing.T) {
	g1, _ := running(t, WithSeed(12345))
	g2, _ := running(t, WithSeed(12345))

	for i := 0; i < 40; i++ {
		switch i {
		case 2:
			g1.SetDirection(DirLeft)
			g2.SetDirection(DirLeft)
		case 5:
			g1.SetDirection(DirDown)
			g2.SetDirection(DirDown)
		}
		g1.Tick()
		g2.Tick()
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		ok   bool
	}{
		{"Up", DirUp, true},
		{"Down", DirDown, true},
		{"left", DirLeft, true},
		{"RIGHT", DirRight, true},
		{"space", DirUp, false},
		{"", DirUp, false},
	}

	for _, tc := range tests {
		d, ok := ParseDirection(tc.name)
		if d != tc.dir || ok != tc.ok {
			t.Errorf("ParseDirection(%q) = (%v, %v), expected (%v, %v)", tc.name, d, ok, tc.dir, tc.ok)
		}
	}
}

func TestDirectionDeltas(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if !d.IsOpposite(d.Opposite()) {
			t.Errorf("%v and %v should be opposite", d, d.Opposite())
		}
		if d.IsOpposite(d) {
			t.Errorf("%v should not be opposite to itself", d)
		}
		delta := d.Delta()
		if abs(delta.X)+abs(delta.Y) != 1 {
			t.Errorf("%v delta %v is not a unit step", d, delta)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
