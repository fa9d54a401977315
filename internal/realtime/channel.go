package realtime

import "fmt"

type ChannelKind string

const (
	ChannelUser    ChannelKind = "user"
	ChannelRequest ChannelKind = "request"
)

// Channel is a logical pub/sub address. Modeling it as a value type instead
// of a concatenated string keeps malformed keys unrepresentable.
type Channel struct {
	Kind ChannelKind
	ID   int32
}

func UserChannel(userID int32) Channel {
	return Channel{Kind: ChannelUser, ID: userID}
}

func RequestChannel(requestID int32) Channel {
	return Channel{Kind: ChannelRequest, ID: requestID}
}

func (c Channel) String() string {
	return fmt.Sprintf("%s:%d", c.Kind, c.ID)
}
