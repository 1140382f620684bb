// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical coordinate space all game objects live in.
// Actual rendering scales to fit the terminal or window.
const (
	FieldWidth  = 120
	FieldHeight = 80 // in sub-pixels, so 40 terminal rows
)

// Session
const (
	InitialLives       = 3
	LevelSeconds       = 60
	LevelUpSpawnFactor = 1.2
	PointsPerCombo     = 10
)

// Player
const (
	PlayerY             = FieldHeight - 4
	PlayerSpeed         = 70.0 // units per second with keyboard movement
	PlayerFireRate      = 0.25 // seconds between shots
	PlayerTurnResponse  = 10.0 // fraction of the aim error closed per second
	PlayerLeanAngle     = 0.35 // radians of barrel tilt while moving
	PlayerBarrelLength  = 4.0
	PlayerBodyHalfWidth = 4.0
)

// Bullets
const (
	BulletSpeed  = 70.0
	BulletRadius = 0.6
)

// Enemies
const (
	EnemyRadius         = 3.0
	EnemyMinAmplitude   = 3.0
	EnemyMaxAmplitude   = 10.0
	EnemyMinWaveSpeed   = 1.0
	EnemyMaxWaveSpeed   = 3.0
	EnemyWaveYFactor    = 0.01
	EnemyLevelSpeedStep = 0.10 // +10% fall speed per level
	ToughEnemyChance    = 0.2  // hard difficulty only
	ToughEnemyHitPoints = 2
)

// Spawning
const (
	SpawnLevelStep = 0.15 // +15% spawn probability per level
)

// Particles
const (
	BurstParticles   = 15
	ParticleGravity  = 30.0
	ParticleSpeed    = 20.0
	ScorePopupRise   = 8.0
	ScorePopupDecay  = 0.8
	LevelBannerDecay = 0.4
)

// Provider health
const (
	ProviderWarnAfter = 5 // consecutive failed question requests before the HUD warns
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 120 // Max terminal columns used for rendering (larger terminals get a border)
	MaxTermHeight         = 40  // Max terminal rows used for rendering
	MaxFrameDelta         = 100 * time.Millisecond
)

// Inactivity (remote sessions)
const (
	InactivityWarnUser       = 120.0 // Seconds without input before the warning shows
	InactivityDisconnectUser = 180.0 // Seconds without input before disconnect
)
