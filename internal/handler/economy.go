package handler

import (
	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/scripting"
	"github.com/foodfrenzy/stand/internal/world"
)

// checkLevelUp runs after every successful serve. The threshold curve
// grows strictly at each level-up, so repeated checks without new score
// never level twice.
func checkLevelUp(st *world.State, deps *Deps) {
	if st.Score < st.RequiredScore {
		return
	}
	st.Level++
	st.RequiredScore = deps.Balance.RequiredScore(scripting.LevelContext{
		Level:   st.Level,
		Current: st.RequiredScore,
	})
	deps.Log.Info("level up",
		zap.Int("level", st.Level),
		zap.Int("required_score", st.RequiredScore))
	event.Emit(deps.Bus, event.LevelUp{
		Level:         st.Level,
		RequiredScore: st.RequiredScore,
	})
}

// UnlockItem buys a locked menu item. No-op when the item is unknown or
// already unlocked; a short wallet rejects without any deduction.
func UnlockItem(st *world.State, deps *Deps, itemID string) {
	if st.Phase != world.PhaseActive {
		return
	}
	item := st.Item(itemID)
	if item == nil || item.Unlocked {
		return
	}
	if st.Money < item.UnlockCost {
		event.Emit(deps.Bus, event.InsufficientFunds{
			Action: "unlock",
			ItemID: itemID,
			Cost:   item.UnlockCost,
			Money:  st.Money,
		})
		return
	}
	st.Money -= item.UnlockCost
	item.Unlocked = true
	deps.Log.Info("menu item unlocked",
		zap.String("item", itemID),
		zap.Int("cost", item.UnlockCost))
	event.Emit(deps.Bus, event.ItemUnlocked{ItemID: itemID, Cost: item.UnlockCost})
}

// PurchaseTime trades a fixed amount of currency for extra round seconds.
// Only meaningful while a round is running.
func PurchaseTime(st *world.State, deps *Deps) {
	if st.Phase != world.PhaseActive {
		return
	}
	cost := deps.Cfg.TimePurchaseCost
	if st.Money < cost {
		event.Emit(deps.Bus, event.InsufficientFunds{
			Action: "purchase_time",
			Cost:   cost,
			Money:  st.Money,
		})
		return
	}
	st.Money -= cost
	st.TimeLeft += deps.Cfg.TimePurchaseSecs
	if st.TimeLeft > deps.Cfg.LowTimeWarningSecs {
		st.LowTimeWarned = false // re-arm the one-shot warning
	}
	event.Emit(deps.Bus, event.TimePurchased{
		Cost:     cost,
		Seconds:  deps.Cfg.TimePurchaseSecs,
		TimeLeft: st.TimeLeft,
	})
}
