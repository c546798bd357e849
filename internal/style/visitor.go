package style

// NodeVisitor receives typed callbacks during Accept. Structural nodes get a
// Visit and a Leave call, leaves only a Visit call. Embed BaseVisitor to
// implement only the callbacks you need.
//
// Returning Break from a Visit callback skips that node's children and ends
// the traversal, but Leave is still delivered to the node and to every
// ancestor so calls stay balanced.
type NodeVisitor interface {
	VisitStyle(*StyleDefinition) ControlFlow
	LeaveStyle(*StyleDefinition) ControlFlow

	VisitAssetFolder(*Folder[*AssetDefinition]) ControlFlow
	LeaveAssetFolder(*Folder[*AssetDefinition]) ControlFlow
	VisitAsset(*AssetDefinition) ControlFlow

	VisitVariableFolder(*Folder[*VariableDefinition]) ControlFlow
	LeaveVariableFolder(*Folder[*VariableDefinition]) ControlFlow
	VisitVariable(*VariableDefinition) ControlFlow

	VisitGraphicFolder(*Folder[*GraphicDefinition]) ControlFlow
	LeaveGraphicFolder(*Folder[*GraphicDefinition]) ControlFlow
	VisitGraphic(*GraphicDefinition) ControlFlow
	LeaveGraphic(*GraphicDefinition) ControlFlow

	VisitCellFolder(*Folder[*FreeCell]) ControlFlow
	LeaveCellFolder(*Folder[*FreeCell]) ControlFlow
	VisitCell(*FreeCell) ControlFlow

	VisitTimingTower(*TimingTower) ControlFlow
	LeaveTimingTower(*TimingTower) ControlFlow
	VisitTimingTowerTable(*TimingTowerTable) ControlFlow
	LeaveTimingTowerTable(*TimingTowerTable) ControlFlow
	VisitTimingTowerRow(*TimingTowerRow) ControlFlow
	LeaveTimingTowerRow(*TimingTowerRow) ControlFlow

	VisitColumnFolder(*Folder[*TimingTowerColumn]) ControlFlow
	LeaveColumnFolder(*Folder[*TimingTowerColumn]) ControlFlow
	VisitColumn(*TimingTowerColumn) ControlFlow
}

// BaseVisitor implements every NodeVisitor callback as Continue.
type BaseVisitor struct{}

func (BaseVisitor) VisitStyle(*StyleDefinition) ControlFlow                      { return Continue }
func (BaseVisitor) LeaveStyle(*StyleDefinition) ControlFlow                      { return Continue }
func (BaseVisitor) VisitAssetFolder(*Folder[*AssetDefinition]) ControlFlow       { return Continue }
func (BaseVisitor) LeaveAssetFolder(*Folder[*AssetDefinition]) ControlFlow       { return Continue }
func (BaseVisitor) VisitAsset(*AssetDefinition) ControlFlow                      { return Continue }
func (BaseVisitor) VisitVariableFolder(*Folder[*VariableDefinition]) ControlFlow { return Continue }
func (BaseVisitor) LeaveVariableFolder(*Folder[*VariableDefinition]) ControlFlow { return Continue }
func (BaseVisitor) VisitVariable(*VariableDefinition) ControlFlow                { return Continue }
func (BaseVisitor) VisitGraphicFolder(*Folder[*GraphicDefinition]) ControlFlow   { return Continue }
func (BaseVisitor) LeaveGraphicFolder(*Folder[*GraphicDefinition]) ControlFlow   { return Continue }
func (BaseVisitor) VisitGraphic(*GraphicDefinition) ControlFlow                  { return Continue }
func (BaseVisitor) LeaveGraphic(*GraphicDefinition) ControlFlow                  { return Continue }
func (BaseVisitor) VisitCellFolder(*Folder[*FreeCell]) ControlFlow               { return Continue }
func (BaseVisitor) LeaveCellFolder(*Folder[*FreeCell]) ControlFlow               { return Continue }
func (BaseVisitor) VisitCell(*FreeCell) ControlFlow                              { return Continue }
func (BaseVisitor) VisitTimingTower(*TimingTower) ControlFlow                    { return Continue }
func (BaseVisitor) LeaveTimingTower(*TimingTower) ControlFlow                    { return Continue }
func (BaseVisitor) VisitTimingTowerTable(*TimingTowerTable) ControlFlow          { return Continue }
func (BaseVisitor) LeaveTimingTowerTable(*TimingTowerTable) ControlFlow          { return Continue }
func (BaseVisitor) VisitTimingTowerRow(*TimingTowerRow) ControlFlow              { return Continue }
func (BaseVisitor) LeaveTimingTowerRow(*TimingTowerRow) ControlFlow              { return Continue }
func (BaseVisitor) VisitColumnFolder(*Folder[*TimingTowerColumn]) ControlFlow    { return Continue }
func (BaseVisitor) LeaveColumnFolder(*Folder[*TimingTowerColumn]) ControlFlow    { return Continue }
func (BaseVisitor) VisitColumn(*TimingTowerColumn) ControlFlow                   { return Continue }

// Accept dispatches n and its subtree to v.
func Accept(n Node, v NodeVisitor) ControlFlow {
	if IsNil(n) {
		return Continue
	}
	switch n := n.(type) {
	case *StyleDefinition:
		return structural(n, v, v.VisitStyle(n), func() ControlFlow { return v.LeaveStyle(n) })
	case *Folder[*AssetDefinition]:
		return structural(n, v, v.VisitAssetFolder(n), func() ControlFlow { return v.LeaveAssetFolder(n) })
	case *AssetDefinition:
		return v.VisitAsset(n)
	case *Folder[*VariableDefinition]:
		return structural(n, v, v.VisitVariableFolder(n), func() ControlFlow { return v.LeaveVariableFolder(n) })
	case *VariableDefinition:
		return v.VisitVariable(n)
	case *Folder[*GraphicDefinition]:
		return structural(n, v, v.VisitGraphicFolder(n), func() ControlFlow { return v.LeaveGraphicFolder(n) })
	case *GraphicDefinition:
		return structural(n, v, v.VisitGraphic(n), func() ControlFlow { return v.LeaveGraphic(n) })
	case *Folder[*FreeCell]:
		return structural(n, v, v.VisitCellFolder(n), func() ControlFlow { return v.LeaveCellFolder(n) })
	case *FreeCell:
		return v.VisitCell(n)
	case *TimingTower:
		return structural(n, v, v.VisitTimingTower(n), func() ControlFlow { return v.LeaveTimingTower(n) })
	case *TimingTowerTable:
		return structural(n, v, v.VisitTimingTowerTable(n), func() ControlFlow { return v.LeaveTimingTowerTable(n) })
	case *TimingTowerRow:
		return structural(n, v, v.VisitTimingTowerRow(n), func() ControlFlow { return v.LeaveTimingTowerRow(n) })
	case *Folder[*TimingTowerColumn]:
		return structural(n, v, v.VisitColumnFolder(n), func() ControlFlow { return v.LeaveColumnFolder(n) })
	case *TimingTowerColumn:
		return v.VisitColumn(n)
	}
	return Continue
}

func structural(n Node, v NodeVisitor, entered ControlFlow, leave func() ControlFlow) ControlFlow {
	flow := entered
	if flow == Continue {
		for _, child := range Children(n) {
			if Accept(child, v) == Break {
				flow = Break
				break
			}
		}
	}
	if leave() == Break {
		return Break
	}
	return flow
}
