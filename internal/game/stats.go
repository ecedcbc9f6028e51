package game

// Stats are cumulative counters for one episode.
type Stats struct {
	UnitsPlaced        int
	UnitsLost          int
	ResourcesSpent     int
	ResourcesCollected int
	ResourcesExpired   int
	EnemiesSpawned     int
	EnemiesDefeated    int
	ProjectilesFired   int
	ProjectileHits     int
	DamageDealt        int
	DamageTaken        int
	WavesCleared       int
	LevelsCleared      int
	RejectedActions    int
}

// Delta returns s - prev, field by field.
func (s Stats) Delta(prev Stats) Stats {
	return Stats{
		UnitsPlaced:        s.UnitsPlaced - prev.UnitsPlaced,
		UnitsLost:          s.UnitsLost - prev.UnitsLost,
		ResourcesSpent:     s.ResourcesSpent - prev.ResourcesSpent,
		ResourcesCollected: s.ResourcesCollected - prev.ResourcesCollected,
		ResourcesExpired:   s.ResourcesExpired - prev.ResourcesExpired,
		EnemiesSpawned:     s.EnemiesSpawned - prev.EnemiesSpawned,
		EnemiesDefeated:    s.EnemiesDefeated - prev.EnemiesDefeated,
		ProjectilesFired:   s.ProjectilesFired - prev.ProjectilesFired,
		ProjectileHits:     s.ProjectileHits - prev.ProjectileHits,
		DamageDealt:        s.DamageDealt - prev.DamageDealt,
		DamageTaken:        s.DamageTaken - prev.DamageTaken,
		WavesCleared:       s.WavesCleared - prev.WavesCleared,
		LevelsCleared:      s.LevelsCleared - prev.LevelsCleared,
		RejectedActions:    s.RejectedActions - prev.RejectedActions,
	}
}

// Add returns s + o, field by field.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		UnitsPlaced:        s.UnitsPlaced + o.UnitsPlaced,
		UnitsLost:          s.UnitsLost + o.UnitsLost,
		ResourcesSpent:     s.ResourcesSpent + o.ResourcesSpent,
		ResourcesCollected: s.ResourcesCollected + o.ResourcesCollected,
		ResourcesExpired:   s.ResourcesExpired + o.ResourcesExpired,
		EnemiesSpawned:     s.EnemiesSpawned + o.EnemiesSpawned,
		EnemiesDefeated:    s.EnemiesDefeated + o.EnemiesDefeated,
		ProjectilesFired:   s.ProjectilesFired + o.ProjectilesFired,
		ProjectileHits:     s.ProjectileHits + o.ProjectileHits,
		DamageDealt:        s.DamageDealt + o.DamageDealt,
		DamageTaken:        s.DamageTaken + o.DamageTaken,
		WavesCleared:       s.WavesCleared + o.WavesCleared,
		LevelsCleared:      s.LevelsCleared + o.LevelsCleared,
		RejectedActions:    s.RejectedActions + o.RejectedActions,
	}
}

// Accuracy is hits per projectile fired, or 0 before the first shot.
func (s Stats) Accuracy() float64 {
	if s.ProjectilesFired == 0 {
		return 0
	}
	return float64(s.ProjectileHits) / float64(s.ProjectilesFired)
}
