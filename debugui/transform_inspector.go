package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/scene"
	"github.com/plus3/puppet/transform"
)

func NewTransformInspectorComponent() TransformInspectorComponent {
	return TransformInspectorComponent{}
}

type transformRow struct {
	id    ecs.EntityId
	label string
	order int
	wt    *transform.WorldTransform
}

type transformItem struct {
	ecs.EntityId
	*transform.WorldTransform
	Part *scene.Part `ecs:"optional"`
}

// transformRows lists every transform, character joints by name and in
// joint order first, then the rest by id.
func transformRows(query *ecs.Query[transformItem]) []transformRow {
	var rows []transformRow
	for item := range query.Iter() {
		row := transformRow{
			id:    item.EntityId,
			label: fmt.Sprintf("entity %d", item.EntityId),
			order: int(scene.PartCount),
			wt:    item.WorldTransform,
		}
		if item.Part != nil {
			row.label = item.Part.Id.String()
			row.order = int(item.Part.Id)
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b transformRow) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return rows
}

func (ti *TransformInspectorComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Transforms", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := transformRows(ecs.NewQuery[transformItem](storage))
	imgui.Text(fmt.Sprintf("Transforms: %d", len(rows)))
	imgui.Separator()

	var selected *transformRow
	for i := range rows {
		row := &rows[i]
		isSelected := row.id == ti.selected
		if imgui.SelectableBoolV(row.label, isSelected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			ti.selected = row.id
			isSelected = true
		}
		if isSelected {
			selected = row
		}
	}

	imgui.Separator()
	if selected == nil {
		imgui.Text("No transform selected")
		imgui.End()
		return
	}

	imgui.Text(selected.label)
	vec3Input("Translation", &selected.wt.Translation)
	vec3Input("Rotation", &selected.wt.Rotation)
	vec3Input("Scale", &selected.wt.Scale)

	pos := selected.wt.WorldPosition()
	imgui.Text(fmt.Sprintf("World: (%.3f, %.3f, %.3f)", pos.X(), pos.Y(), pos.Z()))

	imgui.End()
}

func vec3Input(label string, v *mgl32.Vec3) {
	if imgui.TreeNodeStr(label) {
		for i, axis := range []string{"x", "y", "z"} {
			imgui.InputFloat(fmt.Sprintf("%s##%s", axis, label), &v[i])
		}
		imgui.TreePop()
	}
}
