package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/camera"
)

func (cp *CameraPanelComponent) Render(vp *camera.ViewProjection) {
	if !imgui.BeginV("Camera", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	if vp == nil {
		imgui.Text("No camera")
		imgui.End()
		return
	}

	vec3Input("Eye", &vp.Eye)
	vec3Input("Target", &vp.Target)
	vec3Input("Up", &vp.Up)

	fov := mgl32.RadToDeg(vp.FovAngleY)
	if imgui.InputFloat("fovAngleY (deg)", &fov) {
		vp.FovAngleY = mgl32.DegToRad(fov)
	}
	imgui.InputFloat("nearZ", &vp.NearZ)
	imgui.InputFloat("farZ", &vp.FarZ)

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Aspect: %.3f", vp.AspectRatio))

	imgui.End()
}
