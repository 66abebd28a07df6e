package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/notify"
	"github.com/fekuna/stockflow-console/internal/product"
	"github.com/fekuna/stockflow-console/internal/product/dto"
	"github.com/fekuna/stockflow-console/internal/product/usecase"
	"go.uber.org/zap"
)

const helpText = `Commands:
  list                 show the cached product list
  refresh              reload products from the backend
  add                  create a product
  edit <id>            edit a product from the list
  form                 re-enter the fields of the open draft
  save                 submit the open draft again
  cancel               discard the open draft
  delete <id>          delete a product
  alerts <company-id>  show low-stock alerts
  help                 show this help
  quit                 exit
`

// ConsoleHandler is the terminal rendition of the Products page.
type ConsoleHandler struct {
	uc     product.UseCase
	alerts inventory.UseCase
	prompt *Prompter
	out    io.Writer
	notify notify.Notifier
	logger logger.ZapLogger
}

func NewConsoleHandler(uc product.UseCase, alerts inventory.UseCase, prompt *Prompter, out io.Writer, n notify.Notifier, log logger.ZapLogger) *ConsoleHandler {
	return &ConsoleHandler{
		uc:     uc,
		alerts: alerts,
		prompt: prompt,
		out:    out,
		notify: n,
		logger: log,
	}
}

// Run loads the list, then serves commands until quit, end of input, or ctx is done.
func (h *ConsoleHandler) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, h.prompt.Close)
	defer stop()

	h.refresh(ctx)
	fmt.Fprintln(h.out, `Type "help" for commands.`)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := h.prompt.Ask("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if quit := h.dispatch(ctx, line); quit {
			return nil
		}
	}
}

func (h *ConsoleHandler) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "list", "ls":
		h.renderProducts()
	case "refresh":
		h.refresh(ctx)
	case "add":
		h.uc.BeginCreate()
		h.fillAndSubmit(ctx)
	case "edit":
		id, ok := h.idArg(args, "edit <id>")
		if !ok {
			return false
		}
		if err := h.uc.BeginEdit(id); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				h.notify.Error(fmt.Sprintf("Product %d is not in the list.", id))
				return false
			}
			h.notify.Error(err.Error())
			return false
		}
		h.fillAndSubmit(ctx)
	case "form":
		if _, open := h.uc.Form(); !open {
			h.notify.Error("No draft is open.")
			return false
		}
		h.fillAndSubmit(ctx)
	case "save":
		h.submit(ctx)
	case "cancel":
		h.uc.Cancel()
		fmt.Fprintln(h.out, "Draft discarded.")
	case "delete", "rm":
		id, ok := h.idArg(args, "delete <id>")
		if !ok {
			return false
		}
		if err := h.uc.Remove(ctx, id); err == nil {
			h.renderProducts()
		}
	case "alerts":
		id, ok := h.idArg(args, "alerts <company-id>")
		if !ok {
			return false
		}
		h.renderAlerts(ctx, id)
	case "help", "?":
		fmt.Fprint(h.out, helpText)
	case "quit", "exit", "q":
		return true
	default:
		h.notify.Error(fmt.Sprintf("Unknown command %q. Type \"help\".", cmd))
	}
	return false
}

func (h *ConsoleHandler) idArg(args []string, usage string) (int64, bool) {
	if len(args) != 1 {
		h.notify.Error("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		h.notify.Error(fmt.Sprintf("%q is not a valid id.", args[0]))
		return 0, false
	}
	return id, true
}

func (h *ConsoleHandler) refresh(ctx context.Context) {
	fmt.Fprintln(h.out, "Loading...")
	_ = h.uc.LoadList(ctx)
	h.renderProducts()
}

// fillAndSubmit prompts for every draft field; Enter keeps the shown value.
func (h *ConsoleHandler) fillAndSubmit(ctx context.Context) {
	form, open := h.uc.Form()
	if !open {
		return
	}
	if form.Mode == dto.ModeEditing {
		fmt.Fprintf(h.out, "Edit Product %d\n", form.TargetID)
	} else {
		fmt.Fprintln(h.out, "Add Product")
	}

	fields := form.FormFields
	var err error
	if fields.Name, err = h.askField("Name", fields.Name); err != nil {
		return
	}
	if fields.SKU, err = h.askField("SKU", fields.SKU); err != nil {
		return
	}
	if fields.Price, err = h.askField("Price", fields.Price); err != nil {
		return
	}
	current := "n"
	if fields.IsBundle {
		current = "y"
	}
	bundle, err := h.askField("Is Bundle? (y/n)", current)
	if err != nil {
		return
	}
	fields.IsBundle = strings.EqualFold(bundle, "y") || strings.EqualFold(bundle, "yes")

	if err := h.uc.SetForm(fields); err != nil {
		h.notify.Error(err.Error())
		return
	}
	h.submit(ctx)
}

func (h *ConsoleHandler) askField(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	answer, err := h.prompt.Ask(prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

func (h *ConsoleHandler) submit(ctx context.Context) {
	fmt.Fprintln(h.out, "Saving...")
	err := h.uc.Submit(ctx)
	switch {
	case err == nil:
		h.renderProducts()
	case errors.Is(err, usecase.ErrNoForm):
		h.notify.Error("No draft is open.")
	case errors.Is(err, usecase.ErrSubmitInProgress):
		h.notify.Error("Still saving, please wait.")
	default:
		h.logger.Debug("submit failed, draft kept", zap.Error(err))
		fmt.Fprintln(h.out, `Draft kept. Type "save" to retry, "form" to change it or "cancel" to discard it.`)
	}
}

func (h *ConsoleHandler) renderProducts() {
	if msg := h.uc.Err(); msg != "" {
		fmt.Fprintf(h.out, "! %s\n", msg)
	}
	products := h.uc.Products()
	if len(products) == 0 {
		fmt.Fprintln(h.out, "No products.")
		return
	}

	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tName\tSKU\tPrice\tStock\tBundle?")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t$%s\t%d\t%s\n",
			stockMark(p), p.ID, p.Name, p.SKU, p.Price.StringFixed(2), p.Stock, yesNo(p.IsBundle))
	}
	tw.Flush()
}

func (h *ConsoleHandler) renderAlerts(ctx context.Context, companyID int64) {
	report, err := h.alerts.LowStock(ctx, companyID)
	if err != nil {
		return
	}
	if report.TotalAlerts == 0 {
		fmt.Fprintf(h.out, "No low-stock alerts for company %d.\n", companyID)
		return
	}

	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Product\tSKU\tWarehouse\tStock\tThreshold\tDays left\tSupplier")
	for _, a := range report.Alerts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			a.ProductName, a.SKU, a.WarehouseName, a.CurrentStock, a.Threshold, a.DaysUntilStockout, supplierLabel(a.Supplier))
	}
	tw.Flush()
	fmt.Fprintf(h.out, "%d alert(s)\n", report.TotalAlerts)
}

func stockMark(p model.Product) string {
	if p.OutOfStock() {
		return "!"
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func supplierLabel(s *model.SupplierRef) string {
	if s == nil {
		return "-"
	}
	if s.ContactEmail != nil && *s.ContactEmail != "" {
		return fmt.Sprintf("%s <%s>", s.Name, *s.ContactEmail)
	}
	return s.Name
}
