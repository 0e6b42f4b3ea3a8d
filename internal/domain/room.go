package domain

// RoomInfo is the join handshake delivered over the signaling channel.
type RoomInfo struct {
	URL   string
	Token string
}

func (r RoomInfo) Valid() bool { return r.URL != "" && r.Token != "" }
