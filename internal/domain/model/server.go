package model

import "time"

// Public content served by the /api/server routes. Field names follow the
// web client's camelCase contract.

type ServerInfo struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	Status        string    `json:"status"`
	OnlinePlayers int       `json:"onlinePlayers"`
	MaxPlayers    int       `json:"maxPlayers"`
	Uptime        string    `json:"uptime"`
	IP            string    `json:"ip"`
	Port          int       `json:"port"`
	Description   string    `json:"description"`
	Features      []string  `json:"features"`
	LastUpdated   time.Time `json:"lastUpdated,omitempty"`
}

type Feature struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	Image       string   `json:"image"`
}

type CommunityStats struct {
	TotalPlayers       int       `json:"totalPlayers"`
	ActivePlayers      int       `json:"activePlayers"`
	DiscordMembers     int       `json:"discordMembers"`
	TwitterFollowers   int       `json:"twitterFollowers"`
	YoutubeSubscribers int       `json:"youtubeSubscribers"`
	TiktokFollowers    int       `json:"tiktokFollowers"`
	EventsThisMonth    int       `json:"eventsThisMonth"`
	TotalPlaytime      string    `json:"totalPlaytime"`
	LastUpdated        time.Time `json:"lastUpdated,omitempty"`
}

const (
	PhaseActive   = "active"
	PhaseUpcoming = "upcoming"
	PhasePlanned  = "planned"
)

type TimelinePhase struct {
	Phase       string   `json:"phase"`
	Status      string   `json:"status"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

type Player struct {
	Username string `json:"username"`
	Rank     string `json:"rank"`
	Level    int    `json:"level"`
	Playtime string `json:"playtime"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type NewsItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	Category string `json:"category"`
}
