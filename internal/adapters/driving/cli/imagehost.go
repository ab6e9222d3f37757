package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

var imagehostCmd = &cobra.Command{
	Use:   "imagehost",
	Short: "Manage image host backends",
	Long: `Configure, enable and verify the image host used for uploads.

Supported backends:
  github - commit images to a GitHub repository (contents API)
  gzh    - upload to the WeChat official-account material library`,
	RunE: runImagehostShow,
}

var imagehostShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured image hosts",
	RunE:  runImagehostShow,
}

var (
	githubToken  string
	githubRepo   string
	githubBranch string
	githubPath   string
)

var imagehostGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Configure the GitHub backend",
	RunE:  runImagehostGitHub,
}

var (
	wechatAppID  string
	wechatSecret string
)

var imagehostWeChatCmd = &cobra.Command{
	Use:   "wechat",
	Short: "Configure the WeChat backend",
	RunE:  runImagehostWeChat,
}

var imagehostEnableCmd = &cobra.Command{
	Use:   "enable <github|gzh>",
	Short: "Select the active image host",
	Args:  cobra.ExactArgs(1),
	RunE:  runImagehostEnable,
}

var imagehostDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Clear the active image host",
	RunE:  runImagehostDisable,
}

var imagehostVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Upload a test image through the active host",
	RunE:  runImagehostVerify,
}

func init() {
	imagehostGitHubCmd.Flags().StringVar(&githubToken, "token", "", "personal access token with contents write access")
	imagehostGitHubCmd.Flags().StringVar(&githubRepo, "repo", "", `target repository as "owner/name"`)
	imagehostGitHubCmd.Flags().StringVar(&githubBranch, "branch", "main", "commit target branch")
	imagehostGitHubCmd.Flags().StringVar(&githubPath, "path", "", "optional path prefix inside the repository")

	imagehostWeChatCmd.Flags().StringVar(&wechatAppID, "app-id", "", "official account app id")
	imagehostWeChatCmd.Flags().StringVar(&wechatSecret, "app-secret", "", "official account app secret")

	imagehostCmd.AddCommand(imagehostShowCmd)
	imagehostCmd.AddCommand(imagehostGitHubCmd)
	imagehostCmd.AddCommand(imagehostWeChatCmd)
	imagehostCmd.AddCommand(imagehostEnableCmd)
	imagehostCmd.AddCommand(imagehostDisableCmd)
	imagehostCmd.AddCommand(imagehostVerifyCmd)
	rootCmd.AddCommand(imagehostCmd)
}

func runImagehostShow(cmd *cobra.Command, _ []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	active, hasActive := hostService.Active()

	cmd.Println("Image Hosts")
	cmd.Println("===========")
	cmd.Println()

	cmd.Println("[GitHub]")
	if gh, ok := hostService.GitHub(); ok {
		cmd.Printf("  Repo: %s\n", gh.Repo)
		cmd.Printf("  Branch: %s\n", gh.Branch)
		if gh.Path != "" {
			cmd.Printf("  Path: %s\n", gh.Path)
		}
		cmd.Printf("  Token: %s\n", maskSecret(gh.Token))
	} else {
		cmd.Println("  (not configured)")
	}
	cmd.Println()

	cmd.Println("[WeChat]")
	if wc, ok := hostService.WeChat(); ok {
		cmd.Printf("  App ID: %s\n", wc.AppID)
		cmd.Printf("  App Secret: %s\n", maskSecret(wc.AppSecret))
	} else {
		cmd.Println("  (not configured)")
	}
	cmd.Println()

	if hasActive {
		cmd.Printf("Active host: %s\n", active)
	} else {
		cmd.Println("Active host: (none, uploads disabled)")
	}
	return nil
}

func runImagehostGitHub(cmd *cobra.Command, _ []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	cfg := domain.GitHubHost{
		Token:  githubToken,
		Repo:   githubRepo,
		Branch: githubBranch,
		Path:   githubPath,
	}
	if err := hostService.SaveGitHub(cfg); err != nil {
		return fmt.Errorf("failed to save github host: %w", err)
	}

	cmd.Printf("GitHub host configured: %s@%s\n", cfg.Repo, cfg.Branch)
	cmd.Println("Run 'inkbridge imagehost enable github' to activate it.")
	return nil
}

func runImagehostWeChat(cmd *cobra.Command, _ []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	cfg := domain.WeChatHost{
		AppID:     wechatAppID,
		AppSecret: wechatSecret,
	}
	if err := hostService.SaveWeChat(cfg); err != nil {
		return fmt.Errorf("failed to save wechat host: %w", err)
	}

	cmd.Printf("WeChat host configured: %s\n", cfg.AppID)
	cmd.Println("Run 'inkbridge imagehost enable gzh' to activate it.")
	return nil
}

func runImagehostEnable(cmd *cobra.Command, args []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	kind := domain.HostKind(args[0])
	if err := hostService.Enable(kind); err != nil {
		return fmt.Errorf("failed to enable %s: %w", kind, err)
	}

	cmd.Printf("Active image host: %s\n", kind)
	return nil
}

func runImagehostDisable(cmd *cobra.Command, _ []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	if err := hostService.Disable(); err != nil {
		return fmt.Errorf("failed to disable image host: %w", err)
	}

	cmd.Println("Image host disabled. Uploads will fail until one is enabled.")
	return nil
}

func runImagehostVerify(cmd *cobra.Command, _ []string) error {
	if hostService == nil {
		return errors.New("image host service not configured")
	}

	cmd.Print("Uploading test image... ")
	url, err := hostService.Verify(cmd.Context())
	if err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	cmd.Printf("Test image available at: %s\n", url)
	return nil
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
