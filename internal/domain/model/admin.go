package model

import "time"

const (
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

type ServerStats struct {
	OnlinePlayers int     `json:"onlinePlayers"`
	MaxPlayers    int     `json:"maxPlayers"`
	Uptime        string  `json:"uptime"`
	TPS           float64 `json:"tps"`
	MemoryUsage   string  `json:"memoryUsage"`
	CPUUsage      string  `json:"cpuUsage"`
	WorldSize     string  `json:"worldSize"`
	ActiveWorlds  int     `json:"activeWorlds"`
}

type PlayerStat struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Playtime string `json:"playtime"`
	LastSeen string `json:"lastSeen"`
	Rank     string `json:"rank"`
	Level    int    `json:"level"`
	Balance  int    `json:"balance"`
}

// Online reports whether the player is currently connected.
func (p PlayerStat) Online() bool {
	return p.LastSeen == "Online"
}

type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Player    *string   `json:"player"`
}

type Ban struct {
	Username string    `json:"username"`
	Reason   string    `json:"reason"`
	Duration string    `json:"duration"`
	BannedBy string    `json:"bannedBy"`
	BannedAt time.Time `json:"bannedAt"`
}

type Unban struct {
	Username   string    `json:"username"`
	UnbannedBy string    `json:"unbannedBy"`
	UnbannedAt time.Time `json:"unbannedAt"`
}

type Kick struct {
	Username string    `json:"username"`
	Reason   string    `json:"reason"`
	KickedBy string    `json:"kickedBy"`
	KickedAt time.Time `json:"kickedAt"`
}

type CommandExecution struct {
	Command    string    `json:"command"`
	ExecutedBy string    `json:"executedBy"`
	ExecutedAt time.Time `json:"executedAt"`
	Result     string    `json:"result"`
}

type ServerSettings struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Port            int    `json:"port"`
	MaxPlayers      int    `json:"maxPlayers"`
	Whitelist       bool   `json:"whitelist"`
	Difficulty      string `json:"difficulty"`
	Gamemode        string `json:"gamemode"`
	PVP             bool   `json:"pvp"`
	SpawnProtection int    `json:"spawnProtection"`
}

type World struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Seed string `json:"seed"`
	Size string `json:"size"`
}

type ServerConfig struct {
	Server ServerSettings `json:"server"`
	Worlds []World        `json:"worlds"`
}

type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type Performance struct {
	TPS    []float64 `json:"tps"`
	Memory []int     `json:"memory"`
	CPU    []int     `json:"cpu"`
}

type TopPlayer struct {
	Username string `json:"username"`
	Playtime string `json:"playtime"`
	Level    int    `json:"level"`
}

type Analytics struct {
	Period            string      `json:"period"`
	PlayerCount       Series      `json:"playerCount"`
	ServerPerformance Performance `json:"serverPerformance"`
	TopPlayers        []TopPlayer `json:"topPlayers"`
}
