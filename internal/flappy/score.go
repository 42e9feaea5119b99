package flappy

// PointsPerObstacle is the score for passing one obstacle; a pair is worth 1.
const PointsPerObstacle = 0.5

// scoreObstacle marks o completed once the player's x is past its trailing
// edge and returns the points earned.
func scoreObstacle(p Player, o *Obstacle) float64 {
	if o.Completed || p.X <= o.X+o.Width {
		return 0
	}
	o.Completed = true
	return PointsPerObstacle
}

// UpdateScore completes every obstacle the player has passed and returns the
// points earned this call. Completed obstacles never score again.
func UpdateScore(p Player, pairs []Pair) float64 {
	var gained float64
	for i := range pairs {
		gained += scoreObstacle(p, &pairs[i].Top)
		gained += scoreObstacle(p, &pairs[i].Bottom)
	}
	return gained
}
