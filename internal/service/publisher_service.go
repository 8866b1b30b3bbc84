package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	config "github.com/agencydesk/agencyflow/configs"
	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
	"github.com/agencydesk/agencyflow/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// PublisherService pushes an approved scheduled post to its platform.
type PublisherService interface {
	Publish(ctx context.Context, post *models.ScheduledPost, acc *models.SocialAccount) (*transfer.PublishResult, error)
	RefreshInstagramToken(ctx context.Context, accountID int64, refreshToken string) error
	RefreshTiktokToken(ctx context.Context, accountID int64, refreshToken string) error
	RefreshYoutubeToken(ctx context.Context, accountID int64, refreshToken string) error
}

type publisherService struct {
	cfg config.Config
	sa  repository.SocialAccountRepository
}

func NewPublisherService(cfg config.Config, sa repository.SocialAccountRepository) PublisherService {
	return &publisherService{
		cfg: cfg,
		sa:  sa,
	}
}

func (s *publisherService) Publish(ctx context.Context, post *models.ScheduledPost, acc *models.SocialAccount) (*transfer.PublishResult, error) {
	decryptedAccessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	caption := composeCaption(post)

	switch post.Platform {
	case workflow.PlatformInstagram:
		return s.publishInstagram(ctx, post, acc, decryptedAccessToken, caption)
	case workflow.PlatformTiktok:
		return s.publishTiktok(ctx, post, acc, decryptedAccessToken, caption)
	case workflow.PlatformYoutube:
		return s.publishYoutube(ctx, post, decryptedAccessToken, caption)
	default:
		return nil, fmt.Errorf("publishing to %s is not supported", post.Platform)
	}
}

// composeCaption appends hashtags and mentions to the caption body the way
// they would be typed into the platform's composer.
func composeCaption(post *models.ScheduledPost) string {
	var b strings.Builder
	b.WriteString(post.Caption)

	for _, tag := range post.Hashtags {
		b.WriteString(" #")
		b.WriteString(strings.TrimPrefix(tag, "#"))
	}
	for _, mention := range post.Mentions {
		b.WriteString(" @")
		b.WriteString(strings.TrimPrefix(mention, "@"))
	}
	return b.String()
}

func (s *publisherService) publishInstagram(ctx context.Context, post *models.ScheduledPost, acc *models.SocialAccount, accessToken, caption string) (*transfer.PublishResult, error) {
	if post.MediaURL == "" {
		return nil, errors.New("instagram posts require media")
	}

	containerID, err := createInstagramContainer(ctx, acc.AccountID, accessToken, post.MediaURL, caption)
	if err != nil {
		return nil, err
	}

	mediaID, err := publishInstagramContainer(ctx, acc.AccountID, accessToken, containerID)
	if err != nil {
		return nil, err
	}

	permalink, err := instagramPermalink(ctx, mediaID, accessToken)
	if err != nil {
		slog.Info(err.Error())
		permalink = fmt.Sprintf("https://www.instagram.com/%s/", acc.AccountUsername)
	}

	return &transfer.PublishResult{
		PostURL:        permalink,
		PlatformPostID: mediaID,
	}, nil
}

func createInstagramContainer(ctx context.Context, igUserID, accessToken, mediaURL, caption string) (string, error) {
	params := url.Values{}
	params.Set("image_url", mediaURL)
	params.Set("caption", caption)
	params.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("https://graph.instagram.com/v21.0/%s/media", igUserID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	var result transfer.InstagramContainerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error creating media container: %s", result.Error.Message)
	}

	return result.ID, nil
}

func publishInstagramContainer(ctx context.Context, igUserID, accessToken, containerID string) (string, error) {
	params := url.Values{}
	params.Set("creation_id", containerID)
	params.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("https://graph.instagram.com/v21.0/%s/media_publish", igUserID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	var result transfer.InstagramContainerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error publishing media container: %s", result.Error.Message)
	}

	return result.ID, nil
}

func instagramPermalink(ctx context.Context, mediaID, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("https://graph.instagram.com/v21.0/%s?fields=permalink&access_token=%s", mediaID, accessToken)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	var result struct {
		Permalink string `json:"permalink"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Permalink, nil
}

func (s *publisherService) publishTiktok(ctx context.Context, post *models.ScheduledPost, acc *models.SocialAccount, accessToken, caption string) (*transfer.PublishResult, error) {
	if post.MediaURL == "" {
		return nil, errors.New("tiktok posts require media")
	}

	postInfo := transfer.VideoPostInfo{
		Title:                 caption,
		PrivacyLevel:          "PUBLIC_TO_EVERYONE",
		DisableDuet:           false,
		DisableComment:        false,
		DisableStitch:         false,
		VideoCoverTimestampMs: 1000,
	}

	sourceInfo := transfer.VideoSourceInfo{
		Source:   "PULL_FROM_URL",
		VideoURL: post.MediaURL,
	}

	videoUploadRequest := transfer.VideoUploadRequest{
		PostInfo:   postInfo,
		SourceInfo: sourceInfo,
	}

	jsonData, err := json.Marshal(videoUploadRequest)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	uploadURL := "https://open.tiktokapis.com/v2/post/publish/video/init/"
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var result transfer.TikTokUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error posting video on tiktok: %s", result.Error.Message)
	}

	return &transfer.PublishResult{
		PostURL:        fmt.Sprintf("https://www.tiktok.com/@%s", acc.AccountUsername),
		PlatformPostID: result.Data.PublishID,
	}, nil
}

func (s *publisherService) publishYoutube(ctx context.Context, post *models.ScheduledPost, accessToken, caption string) (*transfer.PublishResult, error) {
	if post.MediaURL == "" {
		return nil, errors.New("youtube posts require media")
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	ytService, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	tempFile, err := downloadMedia(post.MediaURL)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempFile)

	file, err := os.Open(tempFile)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer file.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Description: caption,
			Title:       post.Title,
			CategoryId:  "22",
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: "public",
		},
	}

	call := ytService.Videos.Insert([]string{"snippet", "status"}, video)
	response, err := call.Media(file).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &transfer.PublishResult{
		PostURL:        "https://youtu.be/" + response.Id,
		PlatformPostID: response.Id,
	}, nil
}

func downloadMedia(mediaURL string) (string, error) {
	tempFile, err := os.CreateTemp("", "upload-*.mp4")
	if err != nil {
		return "", fmt.Errorf("error creating temporary file: %w", err)
	}
	defer tempFile.Close()

	response, err := http.Get(mediaURL)
	if err != nil {
		return "", fmt.Errorf("error downloading media: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response status: %d", response.StatusCode)
	}

	_, err = io.Copy(tempFile, response.Body)
	if err != nil {
		return "", fmt.Errorf("error saving media to temporary file: %w", err)
	}

	return tempFile.Name(), nil
}

func (s *publisherService) RefreshInstagramToken(ctx context.Context, accountID int64, refreshToken string) error {
	decryptedToken, err := utils.Decrypt(refreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	refreshURL := "https://graph.instagram.com/refresh_access_token?grant_type=ig_refresh_token&access_token=" + decryptedToken

	resp, err := http.Get(refreshURL)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("Instagram refresh endpoint returned non-200 status")
		return errors.New("instagram refresh endpoint returned non-200 status")
	}

	var tokenResponse transfer.InstagramLongToken
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		slog.Info(err.Error())
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(tokenResponse.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	socialAccount := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedAccessToken,
		TokenExpiresAt: GetExpiresAt(tokenResponse.ExpiresIn),
	}

	return s.sa.SetToken(ctx, accountID, &socialAccount)
}

func (s *publisherService) RefreshTiktokToken(ctx context.Context, accountID int64, refreshToken string) error {
	decryptedRefreshToken, err := utils.Decrypt(refreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	data := url.Values{}
	data.Set("client_key", s.cfg.TiktokClientKey)
	data.Set("client_secret", s.cfg.TiktokClientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", decryptedRefreshToken)

	req, err := http.NewRequestWithContext(ctx, "POST", tiktokTokenURL, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("TikTok refresh endpoint returned non-200 status")
		return errors.New("tiktok refresh endpoint returned non-200 status")
	}

	var tokenResponse transfer.TiktokTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		slog.Info(err.Error())
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(tokenResponse.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken, err := utils.Encrypt([]byte(tokenResponse.RefreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	socialAccount := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: time.Now().Add(time.Second * time.Duration(tokenResponse.ExpiresIn)),
	}

	return s.sa.SetToken(ctx, accountID, &socialAccount)
}

func (s *publisherService) RefreshYoutubeToken(ctx context.Context, accountID int64, refreshToken string) error {
	conf := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.upload"},
		Endpoint:     google.Endpoint,
	}

	decryptedRefreshToken, err := utils.Decrypt(refreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: decryptedRefreshToken})

	token, err := tokenSource.Token()
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	socialAccount := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		TokenExpiresAt: token.Expiry,
	}

	return s.sa.SetToken(ctx, accountID, &socialAccount)
}
