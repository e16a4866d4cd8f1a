package gateway

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/cordialhq/cordial/discord"
)

// Gateway opcodes.
const (
	opDispatch            = 0
	opHeartbeat           = 1
	opIdentify            = 2
	opPresenceUpdate      = 3
	opResume              = 6
	opReconnect           = 7
	opRequestGuildMembers = 8
	opInvalidSession      = 9
	opHello               = 10
	opHeartbeatACK        = 11
)

// payload is the envelope every inbound frame arrives in. S and T are
// only set on dispatches.
type payload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
	S  int64           `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

// command is the outbound envelope.
type command struct {
	Op int `json:"op"`
	D  any `json:"d"`
}

type helloData struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Properties identifyProperties `json:"properties"`
	Intents    int                `json:"intents"`
	Shard      *[2]int            `json:"shard,omitempty"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

func defaultProperties() identifyProperties {
	return identifyProperties{OS: runtime.GOOS, Browser: "cordial", Device: "cordial"}
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

type presenceData struct {
	Since      *int64             `json:"since"`
	Activities []discord.Activity `json:"activities"`
	Status     string             `json:"status"`
	AFK        bool               `json:"afk"`
}

type guildMembersRequest struct {
	GuildID discord.GuildID `json:"guild_id"`
	Query   string          `json:"query"`
	Limit   int             `json:"limit"`
}

// Close codes the platform sends when it tears the connection down.
const (
	closeUnknownError         = 4000
	closeUnknownOpcode        = 4001
	closeDecodeError          = 4002
	closeNotAuthenticated     = 4003
	closeAuthenticationFailed = 4004
	closeAlreadyAuthenticated = 4005
	closeInvalidSeq           = 4007
	closeRateLimited          = 4008
	closeSessionTimedOut      = 4009
	closeInvalidShard         = 4010
	closeShardingRequired     = 4011
	closeInvalidAPIVersion    = 4012
	closeInvalidIntents       = 4013
	closeDisallowedIntents    = 4014
)

// fatalClose reports close codes caused by how the session is
// configured. Redialing with the same token, shard or intents would
// fail the same way, so the session gives up instead.
func fatalClose(code int) bool {
	switch code {
	case closeAuthenticationFailed, closeInvalidShard, closeShardingRequired,
		closeInvalidAPIVersion, closeInvalidIntents, closeDisallowedIntents:
		return true
	}
	return false
}

// resumableClose reports whether the server-side session survived the
// close. An invalid sequence or timed-out session needs a fresh
// identify; everything else can pick up where it left off.
func resumableClose(code int) bool {
	switch code {
	case closeInvalidSeq, closeSessionTimedOut:
		return false
	}
	return true
}

func closeText(code int) string {
	switch code {
	case closeUnknownError:
		return "unknown error"
	case closeUnknownOpcode:
		return "unknown opcode"
	case closeDecodeError:
		return "decode error"
	case closeNotAuthenticated:
		return "not authenticated"
	case closeAuthenticationFailed:
		return "authentication failed"
	case closeAlreadyAuthenticated:
		return "already authenticated"
	case closeInvalidSeq:
		return "invalid sequence"
	case closeRateLimited:
		return "rate limited"
	case closeSessionTimedOut:
		return "session timed out"
	case closeInvalidShard:
		return "invalid shard"
	case closeShardingRequired:
		return "sharding required"
	case closeInvalidAPIVersion:
		return "invalid api version"
	case closeInvalidIntents:
		return "invalid intents"
	case closeDisallowedIntents:
		return "disallowed intents"
	}
	return fmt.Sprintf("close code %d", code)
}
