package flappy

// Collides reports whether the player's hitbox touches or overlaps the obstacle.
func Collides(p Player, o Obstacle, correction float64) bool {
	return p.Box(correction).Overlaps(o.Box())
}

// DetectCollision tests the player against every live obstacle.
// A dead player never collides again.
func DetectCollision(p Player, pairs []Pair, correction float64) bool {
	if p.Dead {
		return false
	}
	for _, pair := range pairs {
		if Collides(p, pair.Top, correction) || Collides(p, pair.Bottom, correction) {
			return true
		}
	}
	return false
}
