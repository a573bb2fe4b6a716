// SoundCloud API implementation
//
// API reference: https://developers.soundcloud.com/docs/api/explorer/open-api
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/shared"
	"golang.org/x/oauth2"
)

const (
	soundCloudAuthURL  = "https://secure.soundcloud.com/authorize"
	soundCloudTokenURL = "https://api.soundcloud.com/oauth2/token"
	soundCloudAPIURL   = "https://api.soundcloud.com"

	// SearchLimit is the number of tracks requested per search.
	SearchLimit = 10
)

// SoundCloudUser is the subset of the /me profile used to create local accounts.
type SoundCloudUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	AvatarURL    string `json:"avatar_url"`
	PermalinkURL string `json:"permalink_url"`
}

// UID returns the account id as stored on identities.
func (u *SoundCloudUser) UID() string {
	return strconv.FormatInt(u.ID, 10)
}

// SoundCloudOpts contains the dependencies of a [SoundCloudService].
type SoundCloudOpts struct {
	Credentials shared.SoundCloudCredentials
	Endpoints   shared.SoundCloudConfig
	HTTPClient  *http.Client
	Store       IdentityStore
	Logger      *log.Logger
}

// SoundCloudService is the SoundCloud API client: OAuth code exchange, token refresh, profile and track search.
type SoundCloudService struct {
	config      *oauth2.Config
	credentials shared.SoundCloudCredentials
	api         *APIClient
	httpClient  *http.Client
	store       IdentityStore
	logger      *log.Logger
}

// NewSoundCloudService creates a new SoundCloud service.
//
// Missing credentials are not an error here: refreshes report [RefreshConfigMissing] instead.
// When no HTTP client is given, one is created with the configured timeout.
func NewSoundCloudService(opts SoundCloudOpts) *SoundCloudService {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Endpoints.Timeout()}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	authURL := opts.Endpoints.AuthURL
	if authURL == "" {
		authURL = soundCloudAuthURL
	}
	tokenURL := opts.Endpoints.TokenURL
	if tokenURL == "" {
		tokenURL = soundCloudTokenURL
	}

	config := &oauth2.Config{
		ClientID:     opts.Credentials.ClientID,
		ClientSecret: opts.Credentials.ClientSecret,
		RedirectURL:  opts.Credentials.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &SoundCloudService{
		config:      config,
		credentials: opts.Credentials,
		api:         NewAPIClient(opts.Endpoints.APIURL, opts.HTTPClient).WithRateLimit(opts.Endpoints.RateLimit),
		httpClient:  opts.HTTPClient,
		store:       opts.Store,
		logger:      shared.WithLogger(opts.Logger, "service", "soundcloud"),
	}
}

func (s *SoundCloudService) Name() string {
	return "SoundCloud"
}

// AuthCodeURL returns the authorization URL the browser is sent to for sign in.
func (s *SoundCloudService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token.
func (s *SoundCloudService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if !s.credentials.Configured() {
		return nil, fmt.Errorf("%w: soundcloud client_id and client_secret", shared.ErrMissingCredentials)
	}

	token, err := s.config.Exchange(s.oauthContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return token, nil
}

// Me retrieves the profile of the account that owns accessToken.
func (s *SoundCloudService) Me(ctx context.Context, accessToken string) (*SoundCloudUser, error) {
	resp, err := s.api.Get(ctx, "/me", nil, accessToken)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: soundcloud /me status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var user SoundCloudUser
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: soundcloud /me returned no account id", shared.ErrAPIRequest)
	}
	return &user, nil
}

// SearchTracks issues one public track search. The caller interprets the status code.
func (s *SoundCloudService) SearchTracks(ctx context.Context, accessToken, query string) (*APIResponse, error) {
	params := url.Values{
		"q":      {query},
		"limit":  {strconv.Itoa(SearchLimit)},
		"filter": {"public"},
	}
	return s.api.Get(ctx, "/tracks", params, accessToken)
}

// oauthContext makes the oauth2 package use the service's HTTP client (and its timeout).
func (s *SoundCloudService) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}
