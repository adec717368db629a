package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/wire"
)

var demonCmd = &cobra.Command{
	Use:   "demon",
	Short: "Manage demons on the list",
	Long:  "Add, list, show, and edit demons and their creators",
}

var demonAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Place a new demon on the list",
	Long: `Place a new demon at the given position. Every demon at or below that
position moves down by one. Players are matched by name ignoring case and
created when missing.

Examples:
  demonlist demon add "Bloodbath" --position 3 --verifier Riot --publisher Riot \
      --creator Riot --creator Knobbelboy --video https://youtu.be/9fsZ014qB3s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, _ := cmd.Flags().GetInt("position")
		verifier, _ := cmd.Flags().GetString("verifier")
		publisher, _ := cmd.Flags().GetString("publisher")
		creators, _ := cmd.Flags().GetStringArray("creator")

		sub := primary.DemonSubmission{
			Name:      args[0],
			Position:  position,
			Verifier:  verifier,
			Publisher: publisher,
			Creators:  creators,
		}
		if cmd.Flags().Changed("video") {
			video, _ := cmd.Flags().GetString("video")
			sub.Video = &video
		}
		if cmd.Flags().Changed("fps") {
			fps, _ := cmd.Flags().GetString("fps")
			sub.FPS = &fps
		}

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Add(cmd.Context(), sub)
		return err
	},
}

var demonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List demons by position",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		hidden, _ := cmd.Flags().GetBool("hidden")
		after, _ := cmd.Flags().GetInt("after")
		limit, _ := cmd.Flags().GetInt("limit")

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.List(cmd.Context(), primary.DemonFilters{
			Name:          name,
			IncludeHidden: hidden,
			After:         after,
			Limit:         limit,
		})
		return err
	},
}

var demonShowCmd = &cobra.Command{
	Use:   "show [demon-id]",
	Short: "Show demon details",
	Long: `Show a demon with its creators and approved records.

Examples:
  demonlist demon show 12
  demonlist demon show --position 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, _ := cmd.Flags().GetInt("position")

		var (
			ref        int64
			byPosition bool
		)
		switch {
		case cmd.Flags().Changed("position"):
			if len(args) > 0 {
				return fmt.Errorf("pass either a demon ID or --position, not both")
			}
			ref, byPosition = int64(position), true
		case len(args) == 1:
			id, err := parseID(args[0], "demon")
			if err != nil {
				return err
			}
			ref = id
		default:
			return fmt.Errorf("a demon ID or --position is required")
		}

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Show(cmd.Context(), ref, byPosition)
		return err
	},
}

var demonEditCmd = &cobra.Command{
	Use:   "edit [demon-id]",
	Short: "Edit a demon",
	Long: `Edit a demon's attributes. Only flags that are given change anything;
an empty --video or --fps clears the value. Positions cannot be edited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "demon")
		if err != nil {
			return err
		}

		req := primary.UpdateDemonRequest{DemonID: id}
		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			req.Name = &v
		}
		if flags.Changed("video") {
			v, _ := flags.GetString("video")
			req.Video = &v
		}
		if flags.Changed("fps") {
			v, _ := flags.GetString("fps")
			req.FPS = &v
		}
		if flags.Changed("requirement") {
			v, _ := flags.GetInt("requirement")
			req.Requirement = &v
		}
		if flags.Changed("hidden") {
			v, _ := flags.GetBool("hidden")
			req.Hidden = &v
		}
		if flags.Changed("verifier") {
			v, _ := flags.GetString("verifier")
			req.Verifier = &v
		}
		if flags.Changed("publisher") {
			v, _ := flags.GetString("publisher")
			req.Publisher = &v
		}

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Edit(cmd.Context(), req)
		return err
	},
}

var demonCreatorCmd = &cobra.Command{
	Use:   "creator",
	Short: "Manage the creators of a demon",
}

var demonCreatorAddCmd = &cobra.Command{
	Use:   "add [demon-id] [player-name]",
	Short: "Add a creator to a demon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "demon")
		if err != nil {
			return err
		}

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		return adapter.AddCreator(cmd.Context(), id, args[1])
	},
}

var demonCreatorRemoveCmd = &cobra.Command{
	Use:   "remove [demon-id] [player-id]",
	Short: "Remove a creator from a demon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		demonID, err := parseID(args[0], "demon")
		if err != nil {
			return err
		}
		playerID, err := parseID(args[1], "player")
		if err != nil {
			return err
		}

		adapter, err := wire.DemonAdapter()
		if err != nil {
			return err
		}
		return adapter.RemoveCreator(cmd.Context(), demonID, playerID)
	},
}

// DemonCmd returns the demon command
func DemonCmd() *cobra.Command {
	// Add flags
	demonAddCmd.Flags().IntP("position", "p", 0, "Position to place the demon at (required)")
	demonAddCmd.Flags().String("verifier", "", "Name of the verifying player (required)")
	demonAddCmd.Flags().String("publisher", "", "Name of the publishing player (required)")
	demonAddCmd.Flags().StringArrayP("creator", "c", nil, "Creator name (repeatable, order is kept)")
	demonAddCmd.Flags().String("video", "", "Verification video URL")
	demonAddCmd.Flags().String("fps", "", "Frame rate the demon was verified at")
	_ = demonAddCmd.MarkFlagRequired("position")
	_ = demonAddCmd.MarkFlagRequired("verifier")
	_ = demonAddCmd.MarkFlagRequired("publisher")

	demonListCmd.Flags().StringP("name", "n", "", "Only demons whose name contains this text")
	demonListCmd.Flags().Bool("hidden", false, "Include hidden demons")
	demonListCmd.Flags().Int("after", 0, "Only demons below this position")
	demonListCmd.Flags().IntP("limit", "l", 50, "Maximum number of demons")

	demonShowCmd.Flags().IntP("position", "p", 0, "Show the demon at this position instead of by ID")

	demonEditCmd.Flags().String("name", "", "New name")
	demonEditCmd.Flags().String("video", "", "New verification video URL (empty clears)")
	demonEditCmd.Flags().String("fps", "", "New frame rate (empty clears)")
	demonEditCmd.Flags().Int("requirement", 0, "New record requirement (0-100)")
	demonEditCmd.Flags().Bool("hidden", false, "Hide or unhide the demon")
	demonEditCmd.Flags().String("verifier", "", "New verifier name")
	demonEditCmd.Flags().String("publisher", "", "New publisher name")

	// Add subcommands
	demonCreatorCmd.AddCommand(demonCreatorAddCmd)
	demonCreatorCmd.AddCommand(demonCreatorRemoveCmd)

	demonCmd.AddCommand(demonAddCmd)
	demonCmd.AddCommand(demonListCmd)
	demonCmd.AddCommand(demonShowCmd)
	demonCmd.AddCommand(demonEditCmd)
	demonCmd.AddCommand(demonCreatorCmd)

	return demonCmd
}
