package convert

// Correlator hands out sequential song and arena IDs and records the
// content-hash -> song ID mapping that resource pack repackaging consumes
// later in the run. One Correlator is created per run, so conversions stay
// independently testable.
type Correlator struct {
	startSongID  int
	startArenaID int
	nextSongID   int
	nextArenaID  int
	shaToSongID  map[string]int
}

func NewCorrelator(startSongID, startArenaID int) *Correlator {
	return &Correlator{
		startSongID:  startSongID,
		startArenaID: startArenaID,
		nextSongID:   startSongID,
		nextArenaID:  startArenaID,
		shaToSongID:  make(map[string]int),
	}
}

// NextSongID returns the ID the next committed song will receive.
func (c *Correlator) NextSongID() int {
	return c.nextSongID
}

// CommitSong assigns the current song ID to the given content hash and
// advances the counter. Only called after a successful conversion, so
// failed songs never consume an ID.
func (c *Correlator) CommitSong(sha string) int {
	id := c.nextSongID
	c.shaToSongID[sha] = id
	c.nextSongID++
	return id
}

// NextArenaID returns the ID the next committed arena will receive.
func (c *Correlator) NextArenaID() int {
	return c.nextArenaID
}

// CommitArena advances the arena counter and returns the assigned ID.
func (c *Correlator) CommitArena() int {
	id := c.nextArenaID
	c.nextArenaID++
	return id
}

// SongID looks up the song ID assigned to a content hash.
func (c *Correlator) SongID(sha string) (int, bool) {
	id, ok := c.shaToSongID[sha]
	return id, ok
}

// SHAMap exposes the full content-hash -> song ID table.
func (c *Correlator) SHAMap() map[string]int {
	return c.shaToSongID
}

// SongCount returns how many songs have been committed.
func (c *Correlator) SongCount() int {
	return c.nextSongID - c.startSongID
}

// ArenaCount returns how many arenas have been committed.
func (c *Correlator) ArenaCount() int {
	return c.nextArenaID - c.startArenaID
}
