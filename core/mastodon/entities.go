package mastodon

import (
	"encoding/json"
	"time"

	"mastodon-sync/core/utils"
)

// Account is the API representation of a user.
type Account struct {
	ID             ID        `json:"id"`
	Username       string    `json:"username"`
	Acct           string    `json:"acct"`
	DisplayName    string    `json:"display_name"`
	Locked         bool      `json:"locked"`
	Bot            *bool     `json:"bot,omitempty"`
	Suspended      *bool     `json:"suspended,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Note           string    `json:"note"`
	URL            string    `json:"url"`
	Avatar         string    `json:"avatar"`
	AvatarStatic   string    `json:"avatar_static"`
	Header         string    `json:"header"`
	HeaderStatic   string    `json:"header_static"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	StatusesCount  int       `json:"statuses_count"`
}

// Status is a toot as returned by timelines and status endpoints.
type Status struct {
	ID                 ID           `json:"id"`
	URI                string       `json:"uri"`
	URL                *string      `json:"url,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	Account            Account      `json:"account"`
	Content            string       `json:"content"`
	Visibility         string       `json:"visibility"`
	Sensitive          bool         `json:"sensitive"`
	SpoilerText        string       `json:"spoiler_text"`
	MediaAttachments   []Attachment `json:"media_attachments"`
	Application        *Application `json:"application,omitempty"`
	Mentions           []Mention    `json:"mentions"`
	Tags               []Tag        `json:"tags"`
	Emojis             []Emoji      `json:"emojis"`
	ReblogsCount       int          `json:"reblogs_count"`
	FavouritesCount    int          `json:"favourites_count"`
	RepliesCount       int          `json:"replies_count"`
	InReplyToID        *ID          `json:"in_reply_to_id,omitempty"`
	InReplyToAccountID *ID          `json:"in_reply_to_account_id,omitempty"`
	Reblog             *Status      `json:"reblog,omitempty"`
	Poll               *Poll        `json:"poll,omitempty"`
	Language           *string      `json:"language,omitempty"`
	Text               *string      `json:"text,omitempty"`

	// Viewer-relative flags. Absent when the request was unauthenticated.
	Favourited *bool `json:"favourited,omitempty"`
	Reblogged  *bool `json:"reblogged,omitempty"`
	Muted      *bool `json:"muted,omitempty"`
	Bookmarked *bool `json:"bookmarked,omitempty"`
	Pinned     *bool `json:"pinned,omitempty"`
}

// Poll is attached to at most one status.
type Poll struct {
	ID          ID           `json:"id"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Expired     bool         `json:"expired"`
	Multiple    bool         `json:"multiple"`
	VotesCount  int          `json:"votes_count"`
	VotersCount *int         `json:"voters_count,omitempty"`
	Voted       *bool        `json:"voted,omitempty"`
	OwnVotes    []int        `json:"own_votes,omitempty"`
	Options     []PollOption `json:"options"`
}

// HasOwnVote reports whether index is among the viewer's votes.
func (p Poll) HasOwnVote(index int) bool {
	for _, v := range p.OwnVotes {
		if v == index {
			return true
		}
	}
	return false
}

// PollOption is one choice of a poll. Its position in Poll.Options is its index.
type PollOption struct {
	Title      string `json:"title"`
	VotesCount *int   `json:"votes_count,omitempty"`
}

// Tag is a hashtag with its recent usage history.
type Tag struct {
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	History []History `json:"history,omitempty"`
}

// History is one day of hashtag usage. The API encodes every field as a string.
type History struct {
	Day      string `json:"day"`
	Uses     string `json:"uses"`
	Accounts string `json:"accounts"`
}

// DayTime converts the unix-seconds day marker into a time.
func (h History) DayTime() time.Time {
	return time.Unix(int64(utils.ToInt(h.Day)), 0).UTC()
}

// UsesCount returns the parsed number of uses.
func (h History) UsesCount() int {
	return utils.ToInt(h.Uses)
}

// AccountsCount returns the parsed number of distinct accounts.
func (h History) AccountsCount() int {
	return utils.ToInt(h.Accounts)
}

// Application is the client that posted a status.
type Application struct {
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
}

// Mention is an account mentioned in a status.
type Mention struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Acct     string `json:"acct"`
	URL      string `json:"url"`
}

// Emoji is a custom emoji used in a status.
type Emoji struct {
	Shortcode       string  `json:"shortcode"`
	URL             string  `json:"url"`
	StaticURL       string  `json:"static_url"`
	VisibleInPicker bool    `json:"visible_in_picker"`
	Category        *string `json:"category,omitempty"`
}

// Attachment is a media attachment. Meta is kept verbatim.
type Attachment struct {
	ID          ID              `json:"id"`
	Type        string          `json:"type"`
	URL         *string         `json:"url,omitempty"`
	PreviewURL  string          `json:"preview_url"`
	RemoteURL   *string         `json:"remote_url,omitempty"`
	TextURL     *string         `json:"text_url,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
	Description *string         `json:"description,omitempty"`
	Blurhash    *string         `json:"blurhash,omitempty"`
}

// Relationship describes the edges between the requesting account and the account ID.
type Relationship struct {
	ID             ID    `json:"id"`
	Following      bool  `json:"following"`
	Requested      bool  `json:"requested"`
	Endorsed       *bool `json:"endorsed,omitempty"`
	FollowedBy     *bool `json:"followed_by,omitempty"`
	Muting         bool  `json:"muting"`
	Blocking       bool  `json:"blocking"`
	DomainBlocking bool  `json:"domain_blocking"`
	BlockedBy      *bool `json:"blocked_by,omitempty"`
}

// Subscription is a web push subscription registered for the requesting account.
type Subscription struct {
	ID        ID     `json:"id"`
	Endpoint  string `json:"endpoint"`
	ServerKey string `json:"server_key"`
	Alerts    Alerts `json:"alerts"`
	Policy    string `json:"policy,omitempty"`
}

// Alerts selects which notification types are pushed.
type Alerts struct {
	Favourite bool `json:"favourite"`
	Follow    bool `json:"follow"`
	Reblog    bool `json:"reblog"`
	Mention   bool `json:"mention"`
	Poll      bool `json:"poll"`
}

// SettingProperty carries the client preferences stored on a Setting.
type SettingProperty struct {
	Appearance          *string `json:"appearance,omitempty"`
	TrueBlackDarkMode   *bool   `json:"true_black_dark_mode,omitempty"`
	UsingDefaultBrowser *bool   `json:"using_default_browser,omitempty"`
}

// Push subscription policies, in the order a new Setting seeds them.
const (
	PolicyAll      = "all"
	PolicyFollowed = "followed"
	PolicyFollower = "follower"
	PolicyNone     = "none"
)

// Policies returns every push policy. The first one is the default.
func Policies() []string {
	return []string{PolicyAll, PolicyFollowed, PolicyFollower, PolicyNone}
}
