// internal/bot/commands.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/encoding/charmap"

	"tap-order-pay/internal/commission"
	"tap-order-pay/internal/domain"
	"tap-order-pay/internal/storage"
)

const helpText = "🍽 *Tap Order & Pay*\n\n" +
	"Commands:\n" +
	"`/tiers` — commission tiers\n" +
	"`/quote 40 10` — breakdown for base 40, tip 10\n" +
	"`/split 120 30 3` — split a bill between 3 diners\n" +
	"`/summary Restaurant [YYYY-MM-DD]` — daily settlement"

type Store interface {
	FindRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error)
	DailySummary(ctx context.Context, restaurantID int64, day string) (*domain.DailySummary, error)
}

// Dispatcher turns a chat message into a reply. It knows nothing about
// Telegram so the polling bot and the webhook share it.
type Dispatcher struct {
	store Store
	now   func() time.Time
}

func NewDispatcher(store Store) *Dispatcher {
	return &Dispatcher{store: store, now: time.Now}
}

func (d *Dispatcher) Handle(ctx context.Context, text string) string {
	text = strings.TrimSpace(FixEncoding(text))
	cmd, args, _ := strings.Cut(text, " ")
	// "/quote@SomeBot 40" in groups
	cmd, _, _ = strings.Cut(cmd, "@")
	fields := strings.Fields(args)

	var (
		reply string
		err   error
	)
	switch cmd {
	case "/start", "/help":
		reply = helpText
	case "/tiers":
		reply = tiersText()
	case "/quote":
		reply, err = quote(fields)
	case "/split":
		reply, err = split(fields)
	case "/summary":
		reply, err = d.summary(ctx, fields)
	default:
		reply = "Unknown command. Try /help"
	}

	if err != nil {
		return "❌ Error: " + escape(err.Error())
	}
	return reply
}

func tiersText() string {
	lines := []string{"📊 *Commission tiers* (total / client / restaurant)"}
	for _, t := range commission.Tiers() {
		lines = append(lines, fmt.Sprintf("- %s: %.1f%% / %.1f%% / %.1f%%",
			t.Name, t.Rates.XquisitoTotal, t.Rates.ClientPays, t.Rates.RestaurantPays))
	}
	lines = append(lines, "Any other subtotal is charged the 20-30 rates.")
	return strings.Join(lines, "\n")
}

func parseAmount(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

func quote(fields []string) (string, error) {
	if len(fields) < 1 || len(fields) > 2 {
		return "", errors.New("usage: /quote <base> [tip]")
	}
	base, err := parseAmount("base", fields[0])
	if err != nil {
		return "", err
	}
	var tip float64
	if len(fields) == 2 {
		if tip, err = parseAmount("tip", fields[1]); err != nil {
			return "", err
		}
	}

	b, err := commission.CalculateCommissions(base, tip)
	if err != nil {
		return "", err
	}
	return breakdownText("🧾 *Quote*", b), nil
}

func split(fields []string) (string, error) {
	if len(fields) != 3 {
		return "", errors.New("usage: /split <base> <tip> <parts>")
	}
	base, err := parseAmount("base", fields[0])
	if err != nil {
		return "", err
	}
	tip, err := parseAmount("tip", fields[1])
	if err != nil {
		return "", err
	}
	parts, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", fmt.Errorf("invalid parts: %q", fields[2])
	}

	shares, err := commission.Split(base, tip, parts)
	if err != nil {
		return "", err
	}
	lines := []string{fmt.Sprintf("✂️ *Split in %d*", parts)}
	for i, b := range shares {
		d := b.Display()
		lines = append(lines, fmt.Sprintf("%d. %s + tip %s → pays %s", i+1, d.BaseAmount, d.TipAmount, d.TotalAmountCharged))
	}
	return strings.Join(lines, "\n"), nil
}

func breakdownText(title string, b commission.Breakdown) string {
	d := b.Display()
	return strings.Join([]string{
		title,
		fmt.Sprintf("Subtotal: %s (tier %s)", commission.FormatAmount(b.SubtotalForCommission), b.Tier),
		fmt.Sprintf("Rates: %.1f%% client / %.1f%% restaurant", b.Rates.ClientPays, b.Rates.RestaurantPays),
		fmt.Sprintf("Client commission: %s + IVA %s = %s", d.XquisitoCommissionClient, d.IVAXquisitoClient, d.XquisitoClientCharge),
		fmt.Sprintf("Restaurant commission: %s + IVA %s = %s", d.XquisitoCommissionRestaurant, d.IVAXquisitoRestaurant, d.XquisitoRestaurantCharge),
		fmt.Sprintf("*Total charged: %s*", d.TotalAmountCharged),
	}, "\n")
}

func (d *Dispatcher) summary(ctx context.Context, fields []string) (string, error) {
	if len(fields) == 0 {
		return "", errors.New("usage: /summary <restaurant> [YYYY-MM-DD]")
	}
	day := d.now().UTC().Format(storage.DayLayout)
	if last := fields[len(fields)-1]; len(fields) > 1 {
		if _, err := time.Parse(storage.DayLayout, last); err == nil {
			day = last
			fields = fields[:len(fields)-1]
		}
	}
	name := strings.Join(fields, " ")

	r, err := d.store.FindRestaurantByName(ctx, name)
	if err != nil {
		return "", err
	}
	if r == nil {
		return fmt.Sprintf("📭 Restaurant *%s* not found", escape(name)), nil
	}

	sum, err := d.store.DailySummary(ctx, r.ID, day)
	if err != nil {
		return "", err
	}
	if sum.Payments == 0 {
		return fmt.Sprintf("📭 No payments for *%s* on %s", escape(r.Name), day), nil
	}
	return strings.Join([]string{
		fmt.Sprintf("📈 *%s* — %s", escape(r.Name), day),
		fmt.Sprintf("Payments: %d", sum.Payments),
		fmt.Sprintf("Sales: %s, tips: %s", commission.FormatAmount(sum.BaseTotal), commission.FormatAmount(sum.TipTotal)),
		fmt.Sprintf("Commission: client %s, restaurant %s, IVA %s",
			commission.FormatAmount(sum.ClientCommission), commission.FormatAmount(sum.RestaurantCommission), commission.FormatAmount(sum.IVATotal)),
		fmt.Sprintf("Charged: %s", commission.FormatAmount(sum.ChargedTotal)),
		fmt.Sprintf("*Restaurant net: %s*", commission.FormatAmount(sum.RestaurantNetTotal)),
	}, "\n"), nil
}

// escape keeps user-supplied names from breaking Markdown replies.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FixEncoding re-decodes text that arrived as windows-1251 bytes.
func FixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
