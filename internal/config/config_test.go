package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

// setRequired fills every notEmpty variable so individual tests only adjust
// what they exercise.
func (s *ConfigTestSuite) setRequired() {
	s.T().Setenv("RECAPTCHA_SECRET", "test-secret")
	s.T().Setenv("MAIL_HOST", "smtp.example.com")
	s.T().Setenv("MAIL_USER", "relay@example.com")
	s.T().Setenv("MAIL_PASSWORD", "hunter2")
	s.T().Setenv("MAIL_FROM", "relay@example.com")
	s.T().Setenv("MAIL_TO", "operator@example.com")
}

func (s *ConfigTestSuite) TestDefaults() {
	s.setRequired()

	cfg, err := Load()
	s.Require().NoError(err)

	s.Require().Equal(":8080", cfg.ListenAddr)
	s.Require().Equal(5, cfg.RateLimit.Max)
	s.Require().Equal(10*time.Minute, cfg.RateLimit.Window)
	s.Require().Equal(0.5, cfg.Captcha.MinScore)
	s.Require().Equal(587, cfg.Mail.Port)
	s.Require().False(cfg.Mail.HTMLBody)
	s.Require().Empty(cfg.DatabaseURL)
}

func (s *ConfigTestSuite) TestMissingSecretFails() {
	s.setRequired()
	s.T().Setenv("RECAPTCHA_SECRET", "")

	_, err := Load()
	s.Require().Error(err)
}

func (s *ConfigTestSuite) TestMissingMailCredentialsFail() {
	s.setRequired()
	s.T().Setenv("MAIL_PASSWORD", "")

	_, err := Load()
	s.Require().Error(err)
}

func (s *ConfigTestSuite) TestAllowedOriginsList() {
	s.setRequired()
	s.T().Setenv("ALLOWED_ORIGINS", "http://localhost:5173,https://portfolio.example.com")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Require().Equal([]string{"http://localhost:5173", "https://portfolio.example.com"}, cfg.AllowedOrigins)
}

func (s *ConfigTestSuite) TestTunableQuota() {
	s.setRequired()
	s.T().Setenv("RATE_LIMIT_MAX", "20")
	s.T().Setenv("RATE_LIMIT_WINDOW", "1h")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Require().Equal(20, cfg.RateLimit.Max)
	s.Require().Equal(time.Hour, cfg.RateLimit.Window)
}

func (s *ConfigTestSuite) TestHTMLBodyToggle() {
	s.setRequired()
	s.T().Setenv("MAIL_HTML_BODY", "true")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Require().True(cfg.Mail.HTMLBody)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
