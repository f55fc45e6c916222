package castkit_mcp

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/iancoleman/strcase"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mcuadros/go-defaults"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/supervisor"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/droidcam"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/scrcpy"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/utils"
)

type sessionManager struct {
	mu          sync.Mutex
	resolver    *bridge.Resolver
	supervisors map[launcher.ToolKind]*supervisor.Supervisor
}

func (manager *sessionManager) supervisor(tool launcher.ToolKind) *supervisor.Supervisor {
	return manager.supervisors[tool]
}

// start acknowledges a terminal handle left over from a previous run
// before launching, so a crashed session does not block a retry.
func (manager *sessionManager) start(ctx context.Context, spec launcher.CommandSpec) (launcher.ProcessHandle, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	sup := manager.supervisor(spec.Tool)
	if sup.State().IsTerminal() {
		sup.Acknowledge()
	}

	if err := sup.Start(ctx, spec); err != nil {
		return launcher.ProcessHandle{}, err
	}

	handle, _ := sup.Handle()
	return handle, nil
}

type sessionStatus struct {
	Tool      string `json:"tool"`
	State     string `json:"state"`
	SessionID string `json:"sessionId,omitempty"`
	PID       int    `json:"pid,omitempty"`
	LastLine  string `json:"lastLine,omitempty"`
	ExitCode  *int   `json:"exitCode,omitempty"`
}

func statusOf(sup *supervisor.Supervisor) sessionStatus {
	status := sessionStatus{
		Tool:  string(sup.Tool()),
		State: string(sup.State()),
	}

	if handle, ok := sup.Handle(); ok {
		status.SessionID = string(handle.Session)
		status.PID = handle.PID
		status.LastLine = handle.LastLine
		status.ExitCode = handle.ExitCode
	}

	return status
}

func createDetectTool(manager *sessionManager) mcpserver.ServerTool {
	tool := mcp.NewTool("detect_device_ip",
		mcp.WithDescription("Resolves the wireless IP address of an Android device attached over USB."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := manager.resolver.ResolveViaUSB(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultStructured(address, address.String()), nil
	}

	return mcpserver.ServerTool{Tool: tool, Handler: handler}
}

type mirrorStartParams struct {
	Address     string `json:"address"`
	DetectIP    bool   `json:"detectIp"`
	BitRate     int    `json:"bitRate" default:"8"`
	MaxFPS      int    `json:"maxFps"`
	MaxSize     int    `json:"maxSize"`
	Orientation string `json:"orientation"`
	Fullscreen  bool   `json:"fullscreen"`
	NoControl   bool   `json:"noControl"`
	RecordFile  string `json:"recordFile"`
	ExtraArgs   string `json:"extraArgs"`
	DryRun      bool   `json:"dryRun"`
}

func createMirrorStartTool(manager *sessionManager) mcpserver.ServerTool {
	tool := mcp.NewTool("start_mirror",
		mcp.WithDescription("Starts a scrcpy screen mirroring session, over USB or wirelessly."),
		mcp.WithString("address", mcp.Description("Device address for a wireless session, as ip or ip:port.")),
		mcp.WithBoolean("detectIp", mcp.Description("Resolve the device address over USB before starting.")),
		mcp.WithNumber("bitRate", mcp.Description("Video bit rate in Mbps (1-50, default 8).")),
		mcp.WithNumber("maxFps", mcp.Description("Frame rate cap (1-120, 0 leaves it unset).")),
		mcp.WithNumber("maxSize", mcp.Description("Longest-dimension cap in pixels (480-4000, 0 leaves it unset).")),
		mcp.WithString("orientation", mcp.Description("Capture orientation: 0, 90, 180 or 270 degrees.")),
		mcp.WithBoolean("fullscreen", mcp.Description("Open the mirror window in fullscreen.")),
		mcp.WithBoolean("noControl", mcp.Description("Display-only mode, no input forwarding.")),
		mcp.WithString("recordFile", mcp.Description("Record the session to this file.")),
		mcp.WithString("extraArgs", mcp.Description("Extra raw arguments appended to the command line.")),
		mcp.WithBoolean("dryRun", mcp.Description("Return the command line without launching.")),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := utils.AnyToStruct[mirrorStartParams](request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defaults.SetDefaults(params)

		model := scrcpy.NewModel()

		if params.DetectIP {
			address, err := manager.resolver.ResolveViaUSB(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			params.Address = address.String()
		}

		assignments := []assignment{
			{scrcpy.KeyTCPIP, params.Address != ""},
			{scrcpy.KeyAddress, params.Address},
			{scrcpy.KeyBitRate, params.BitRate},
			{scrcpy.KeyMaxFPS, params.MaxFPS},
			{scrcpy.KeyMaxSize, params.MaxSize},
			{scrcpy.KeyFullscreen, params.Fullscreen},
			{scrcpy.KeyNoControl, params.NoControl},
			{scrcpy.KeyRecordFile, params.RecordFile},
			{scrcpy.KeyExtraArgs, params.ExtraArgs},
		}
		if params.Orientation != "" {
			assignments = append(assignments, assignment{scrcpy.KeyOrientation, params.Orientation})
		}
		if params.NoControl {
			assignments = append(assignments,
				assignment{scrcpy.KeyMouseControl, false},
				assignment{scrcpy.KeyKeyboardControl, false},
			)
		}

		spec, err := buildCommand(model, assignments, scrcpy.BuildCommand)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if params.DryRun {
			return mcp.NewToolResultText(spec.Preview()), nil
		}

		handle, err := manager.start(ctx, spec)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultStructured(statusOf(manager.supervisor(spec.Tool)),
			fmt.Sprintf("Started %s session %s (pid %d).", handle.Tool, handle.Session, handle.PID)), nil
	}

	return mcpserver.ServerTool{Tool: tool, Handler: handler}
}

type webcamStartParams struct {
	Address   string `json:"address"`
	DetectIP  bool   `json:"detectIp"`
	Port      int    `json:"port" default:"4747"`
	Audio     bool   `json:"audio"`
	VideoSize string `json:"videoSize"`
	DryRun    bool   `json:"dryRun"`
}

func createWebcamStartTool(manager *sessionManager) mcpserver.ServerTool {
	tool := mcp.NewTool("start_webcam",
		mcp.WithDescription("Starts a droidcam-cli webcam session against a wireless device."),
		mcp.WithString("address", mcp.Description("Device address, as ip or ip:port.")),
		mcp.WithBoolean("detectIp", mcp.Description("Resolve the device address over USB before starting.")),
		mcp.WithNumber("port", mcp.Description("DroidCam app port (default 4747).")),
		mcp.WithBoolean("audio", mcp.Description("Enable audio capture.")),
		mcp.WithString("videoSize", mcp.Description("Requested video size, as WIDTHxHEIGHT.")),
		mcp.WithBoolean("dryRun", mcp.Description("Return the command line without launching.")),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := utils.AnyToStruct[webcamStartParams](request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defaults.SetDefaults(params)

		if params.DetectIP {
			address, err := manager.resolver.ResolveViaUSB(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			params.Address = address.String()
		}

		model := droidcam.NewModel()
		assignments := []assignment{
			{droidcam.KeyAddress, params.Address},
			{droidcam.KeyPort, params.Port},
			{droidcam.KeyAudio, params.Audio},
			{droidcam.KeyVideoSize, params.VideoSize},
		}

		spec, err := buildCommand(model, assignments, droidcam.BuildCommand)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if params.DryRun {
			return mcp.NewToolResultText(spec.Preview()), nil
		}

		handle, err := manager.start(ctx, spec)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultStructured(statusOf(manager.supervisor(spec.Tool)),
			fmt.Sprintf("Started %s session %s (pid %d).", handle.Tool, handle.Session, handle.PID)), nil
	}

	return mcpserver.ServerTool{Tool: tool, Handler: handler}
}

type assignment struct {
	key   string
	value any
}

func buildCommand(model *options.Model, assignments []assignment, build func(options.Snapshot) (launcher.CommandSpec, error)) (launcher.CommandSpec, error) {
	for _, assignment := range assignments {
		if err := model.Set(assignment.key, assignment.value); err != nil {
			return launcher.CommandSpec{}, err
		}
	}

	snapshot, err := model.Snapshot()
	if err != nil {
		return launcher.CommandSpec{}, err
	}

	return build(snapshot)
}

func createStopTool(manager *sessionManager, toolKind launcher.ToolKind) mcpserver.ServerTool {
	toolName := fmt.Sprintf("stop_%s", strcase.ToSnake(string(toolKind)))

	tool := mcp.NewTool(toolName,
		mcp.WithDescription(fmt.Sprintf("Stops the running %s session, escalating to kill after a grace period.", toolKind)),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sup := manager.supervisor(toolKind)

		if err := sup.Stop(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		status := statusOf(sup)
		if sup.State().IsTerminal() {
			sup.Acknowledge()
		}

		message := fmt.Sprintf("Stopped %s.", toolKind)
		if status.ExitCode != nil {
			message = fmt.Sprintf("Stopped %s (exit code %s).", toolKind, strconv.Itoa(*status.ExitCode))
		}

		return mcp.NewToolResultStructured(status, message), nil
	}

	return mcpserver.ServerTool{Tool: tool, Handler: handler}
}

func createStatusTool(manager *sessionManager) mcpserver.ServerTool {
	tool := mcp.NewTool("session_status",
		mcp.WithDescription("Reports the state of the mirroring and webcam sessions."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		statuses := []sessionStatus{
			statusOf(manager.supervisor(launcher.ToolMirror)),
			statusOf(manager.supervisor(launcher.ToolWebcam)),
		}

		summary := ""
		for _, status := range statuses {
			summary += fmt.Sprintf("%s: %s\n", status.Tool, status.State)
		}

		return mcp.NewToolResultStructured(statuses, summary), nil
	}

	return mcpserver.ServerTool{Tool: tool, Handler: handler}
}
