// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/prompt"
	"github.com/pdiddy/content-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate one post from the command line",
	Long: `Generate runs research, draft and critique for a single topic and prints
the draft followed by the editor's critique. Pass --user-id to save the draft
to the configured store.`,
	Example: `  content-engine generate "remote work" --platform Twitter --tone punchy
  content-engine generate --topic "AI in healthcare" --creativity 8 --json`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	platform, _ := cmd.Flags().GetString("platform")
	tone, _ := cmd.Flags().GetString("tone")
	userID, _ := cmd.Flags().GetString("user-id")
	asJSON, _ := cmd.Flags().GetBool("json")
	showResearch, _ := cmd.Flags().GetBool("research")

	req := types.GenerateRequest{Topic: topic, Platform: platform, Tone: tone, UserID: userID}
	if cmd.Flags().Changed("creativity") {
		c, _ := cmd.Flags().GetInt("creativity")
		req.Creativity = &c
	}

	if prompt.ParsePlatform(platform) == prompt.Unknown {
		log.Warn("unrecognized platform; using the LinkedIn template", "platform", platform)
	}

	cfg := loadConfig(loadedSecrets)
	svc, st, err := buildService(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	resp, err := svc.Generate(context.Background(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if showResearch {
		fmt.Fprintf(out, "## Research\n\n%s\n\n", resp.Research)
	}
	fmt.Fprintf(out, "## Draft\n\n%s\n\n", resp.Content)
	if prompt.IsPerfect(resp.Critique) {
		fmt.Fprintln(out, "## Critique\n\nEditor accepted the draft as is.")
	} else {
		fmt.Fprintf(out, "## Critique\n\n%s\n", resp.Critique)
	}
	return nil
}

func init() {
	generateCmd.Flags().String("topic", "", "subject of the post (or pass it as arguments)")
	generateCmd.Flags().String("platform", prompt.LinkedIn.String(), "target platform: LinkedIn, Medium or Twitter")
	generateCmd.Flags().String("tone", "Professional", "voice of the post")
	generateCmd.Flags().Int("creativity", types.DefaultCreativity, "1 (conservative) to 10 (adventurous)")
	generateCmd.Flags().String("user-id", "", "save the draft under this user")
	generateCmd.Flags().Bool("json", false, "print the response as JSON")
	generateCmd.Flags().Bool("research", false, "also print the research notes")
	generateCmd.Flags().String("provider", "", "override generation.provider (openai, anthropic, echo)")
	generateCmd.Flags().String("model", "", "override generation.model")
	_ = viper.BindPFlag("generation.provider", generateCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("generation.model", generateCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(generateCmd)
}
